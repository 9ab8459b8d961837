// Package session owns the single active editing session: the selected
// template, the upload mode and the ordered question blocks. All mutation
// goes through methods on Session so invariants (unique block ids, valid
// section references) are enforced at one choke point.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nkapre/paperforge/internal/schema"
	"github.com/nkapre/paperforge/internal/textproc"
)

var (
	ErrUnknownSchema  = errors.New("unknown schema key")
	ErrUnknownBlock   = errors.New("unknown block id")
	ErrUnknownSection = errors.New("section not in active schema")
	ErrStaleSection   = errors.New("section no longer in active schema")
	ErrNoRawText      = errors.New("no extracted text to segment")
	ErrNoBlocks       = errors.New("session has no blocks")
)

// UploadMode selects which pipeline path populates blocks.
type UploadMode string

const (
	ModeImagesPerSection UploadMode = "images"
	ModeSinglePDF        UploadMode = "pdf"
)

// ParseUploadMode validates a mode string.
func ParseUploadMode(s string) (UploadMode, error) {
	switch UploadMode(s) {
	case ModeImagesPerSection, ModeSinglePDF:
		return UploadMode(s), nil
	}
	return "", fmt.Errorf("invalid upload mode %q", s)
}

// Block is one unit of extracted or manually entered question text,
// assigned to a section of the active schema.
type Block struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	SectionID string `json:"section_id"`
}

// BlockSnapshot is a Block plus advisory metadata for the shell.
type BlockSnapshot struct {
	Block
	SuggestedCategory textproc.Category `json:"suggested_category"`
}

// Snapshot is a JSON-safe copy of session state.
type Snapshot struct {
	SchemaKey  string          `json:"schema_key"`
	UploadMode UploadMode      `json:"upload_mode"`
	Blocks     []BlockSnapshot `json:"blocks"`
	HasRawText bool            `json:"has_raw_text"`
}

// Session is the process-wide editing state. A single Session lives for
// the whole process; nothing persists across restarts.
type Session struct {
	mu        sync.Mutex
	registry  *schema.Registry
	schemaKey string
	mode      UploadMode
	blocks    []Block
	rawText   string
}

// New creates a session on the given registry with the default schema
// selected and per-section image upload active.
func New(reg *schema.Registry, defaultSchemaKey string) (*Session, error) {
	if _, ok := reg.Get(defaultSchemaKey); !ok {
		return nil, fmt.Errorf("default schema %q: %w", defaultSchemaKey, ErrUnknownSchema)
	}
	return &Session{
		registry:  reg,
		schemaKey: defaultSchemaKey,
		mode:      ModeImagesPerSection,
	}, nil
}

// Schema returns the active template schema.
func (s *Session) Schema() *schema.TemplateSchema {
	s.mu.Lock()
	defer s.mu.Unlock()
	sch, _ := s.registry.Get(s.schemaKey)
	return sch
}

// SchemaKey returns the active schema key.
func (s *Session) SchemaKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schemaKey
}

// SelectSchema switches the active template. Section ids are
// schema-specific, so all blocks and extracted text are discarded; the
// number of discarded blocks is returned so the caller can warn the user.
func (s *Session) SelectSchema(key string) (discarded int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry.Get(key); !ok {
		return 0, fmt.Errorf("schema %q: %w", key, ErrUnknownSchema)
	}
	discarded = len(s.blocks)
	s.schemaKey = key
	s.blocks = nil
	s.rawText = ""
	return discarded, nil
}

// SetUploadMode switches the upload pipeline path.
func (s *Session) SetUploadMode(m UploadMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// Mode returns the active upload mode.
func (s *Session) Mode() UploadMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetRawText stores the normalized full-document extraction result used
// by the single-PDF path.
func (s *Session) SetRawText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawText = text
}

// RawText returns the stored whole-document extraction result.
func (s *Session) RawText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawText
}

// SegmentRawText splits the stored extraction result into question blocks,
// replacing any existing blocks. Each block gets a fresh id and a default
// section of "Q<position>"; assignments are edited afterward.
func (s *Session) SegmentRawText() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(s.rawText) == "" {
		return 0, ErrNoRawText
	}
	segs := textproc.Segment(s.rawText)
	blocks := make([]Block, 0, len(segs))
	for i, seg := range segs {
		blocks = append(blocks, Block{
			ID:        uuid.New().String(),
			Text:      seg,
			SectionID: "Q" + strconv.Itoa(i+1),
		})
	}
	s.blocks = blocks
	return len(blocks), nil
}

// AddBlock appends an empty block assigned to the schema's first scored
// section and returns it.
func (s *Session) AddBlock() Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	sch, _ := s.registry.Get(s.schemaKey)
	b := Block{
		ID:        uuid.New().String(),
		SectionID: sch.FirstScoredSection().ID,
	}
	s.blocks = append(s.blocks, b)
	return b
}

// DeleteBlock removes a block by id.
func (s *Session) DeleteBlock(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.blocks {
		if b.ID == id {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("block %q: %w", id, ErrUnknownBlock)
}

// SetBlockSection reassigns a block to a section of the active schema.
func (s *Session) SetBlockSection(id, sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sch, _ := s.registry.Get(s.schemaKey)
	if !sch.HasSection(sectionID) {
		return fmt.Errorf("section %q: %w", sectionID, ErrUnknownSection)
	}
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			s.blocks[i].SectionID = sectionID
			return nil
		}
	}
	return fmt.Errorf("block %q: %w", id, ErrUnknownBlock)
}

// SetBlockText replaces a block's text.
func (s *Session) SetBlockText(id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			s.blocks[i].Text = text
			return nil
		}
	}
	return fmt.Errorf("block %q: %w", id, ErrUnknownBlock)
}

// CommitSectionText stores an extraction result for one section: the
// section's existing block is replaced, never appended to. If the section
// is no longer part of the active schema (the user switched templates
// while the upload was in flight) the result is dropped with
// ErrStaleSection.
func (s *Session) CommitSectionText(sectionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sch, _ := s.registry.Get(s.schemaKey)
	if !sch.HasSection(sectionID) {
		return fmt.Errorf("section %q: %w", sectionID, ErrStaleSection)
	}
	for i := range s.blocks {
		if s.blocks[i].SectionID == sectionID {
			s.blocks[i].Text = text
			return nil
		}
	}
	s.blocks = append(s.blocks, Block{
		ID:        uuid.New().String(),
		Text:      text,
		SectionID: sectionID,
	})
	return nil
}

// Blocks returns a copy of the blocks in order.
func (s *Session) Blocks() []Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Snapshot returns a JSON-safe view of the session including advisory
// category suggestions for each block.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		SchemaKey:  s.schemaKey,
		UploadMode: s.mode,
		Blocks:     make([]BlockSnapshot, 0, len(s.blocks)),
		HasRawText: strings.TrimSpace(s.rawText) != "",
	}
	for _, b := range s.blocks {
		snap.Blocks = append(snap.Blocks, BlockSnapshot{
			Block:             b,
			SuggestedCategory: textproc.Classify(b.Text),
		})
	}
	return snap
}

// Preview builds the extracted-text preview: the raw blob in single-PDF
// mode, otherwise the per-section texts in schema order.
func (s *Session) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeSinglePDF {
		return s.rawText
	}
	sch, _ := s.registry.Get(s.schemaKey)
	var b strings.Builder
	for _, sec := range sch.Sections {
		for _, blk := range s.blocks {
			if blk.SectionID != sec.ID {
				continue
			}
			fmt.Fprintf(&b, "=== %s ===\n%s\n\n", sec.Title, blk.Text)
		}
	}
	return b.String()
}
