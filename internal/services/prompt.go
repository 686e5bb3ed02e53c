package services

import (
	"fmt"
	"strings"
)

const QuizSystemPrompt = "You are a helpful assistant that generates educational quizzes in JSON format."

const quizPromptTemplate = `You are an expert quiz generator. Create a challenging 10-question multiple choice quiz based on the following information:

Topic: %s

Study Notes:
%s
%s

Generate exactly 10 multiple choice questions. Each question should have 4 options (A, B, C, D) with only one correct answer.

For each question, provide a detailed explanation of why the correct answer is right and why the other options are wrong.

Return the response as a valid JSON array with this exact structure:
[
  {
    "id": 1,
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Detailed explanation here"
  }
]

Note: correctAnswer is the index (0-3) of the correct option in the options array.

IMPORTANT: Return ONLY the JSON array, no other text or markdown formatting.`

// BuildQuizPrompt renders the user prompt. Same inputs, same output.
func BuildQuizPrompt(topic, notes, additionalContext string) string {
	return fmt.Sprintf(quizPromptTemplate, topic, notes, additionalContext)
}

// FileContextClause lists uploaded material names for the prompt. Empty when
// there are none.
func FileContextClause(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "\n\nUser has uploaded these study materials: " + strings.Join(names, ", ")
}
