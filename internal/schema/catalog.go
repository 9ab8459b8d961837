package schema

// catalog is the built-in template data. Kept as data, not code, so
// templates can be extended without touching the pipeline.
var catalog = []TemplateSchema{
	{
		Key:                 "english-lang-9",
		Name:                "English Language (Class IX)",
		DefaultSubjectTitle: "ENGLISH - I",
		StandardInstructions: []string{
			"1. You will not be allowed to write during the first 15 minutes.",
			"2. This time is to be spent in reading the question paper.",
			"3. The time given at the head of this paper is the time allowed for writing the answer.",
			"4. Attempt all five questions. The intended marks for questions or parts of questions are given in brackets [ ].",
		},
		Sections: []SectionDef{
			{ID: SectionHeader, Title: "Exam Header", Marks: 0},
			{ID: SectionGeneralInstructions, Title: "General Instructions", Marks: 0},
			{ID: "Q1", Title: "Question 1", Marks: 20, Instructions: []string{
				"(Do not spend more than 30 minutes on this question.)",
				"Write a composition of about 300-350 words on any one of the following subjects:",
			}},
			{ID: "Q2", Title: "Question 2", Marks: 10, Instructions: []string{
				"(Do not spend more than 20 minutes on this question.)",
				"Select any one of the following:",
			}},
			{ID: "Q3", Title: "Question 3", Marks: 10},
			{ID: "Q4", Title: "Question 4", Marks: 20, Instructions: []string{
				"Read the following passage carefully and answer the questions that follow:",
			}},
			{ID: "Q5", Title: "Question 5", Marks: 20},
		},
	},
	{
		Key:                  "generic",
		Name:                 "Generic Template",
		DefaultSubjectTitle:  "EXAMINATION",
		StandardInstructions: []string{"Attempt all questions."},
		Sections: []SectionDef{
			{ID: SectionHeader, Title: "Header Info", Marks: 0},
			{ID: SectionGeneralInstructions, Title: "General Instructions", Marks: 0},
			{ID: "SEC_A", Title: "Section A", Marks: 40},
			{ID: "SEC_B", Title: "Section B", Marks: 40},
		},
	},
}
