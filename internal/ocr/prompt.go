package ocr

// ExtractionPrompt instructs the vision model to transcribe a scanned
// exam-paper page verbatim, unwrapping soft line breaks and keeping marks
// annotations at line ends.
const ExtractionPrompt = `You are an expert data entry professional digitizing an exam paper.
Task: Extract ALL the text from this image exactly as it appears. DO NOT filter or skip any parts of the image content.

Strict Rules:
1. Return ONLY the extracted text. No markdown code blocks, no intro, no outro.
2. Fix obvious OCR errors (e.g., '1l' -> 'll', 'rn' -> 'm').
3. Maintain structure: distinct questions and sub-questions (a, b, i, ii) must start on new lines.
4. Join lines that belong to the same paragraph or sentence. DO NOT include line breaks just because the text wraps in the original image. ONLY use line breaks for new distinct questions, sub-questions, or actual new paragraphs.
5. If marks are present like [5] or (10), keep them at the very end of the line.
6. Ignore header noise like "Page 1" or scanned artifacts.`
