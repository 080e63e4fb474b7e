package memory

import "github.com/newn79677-coder/PRACTICE-APP/internal/domain"

// DefaultQuestions is the built-in bank the trainer falls back to whenever
// persisted questions are absent or corrupt.
func DefaultQuestions() []domain.Question {
	return []domain.Question{
		{
			Prompt: map[string]string{
				"en": "What is 2 + 2?",
				"hi": "2+2 कितना होता है?",
			},
			Options: map[string][]string{
				"en": {"2", "3", "4", "5"},
				"hi": {"२", "३", "४", "५"},
			},
			Answer: "4",
			Explanation: map[string]string{
				"en": "Because 2 added to 2 equals 4.",
				"hi": "क्योंकि 2 में 2 जोड़ने से 4 होता है।",
			},
		},
		{
			Prompt: map[string]string{
				"en": "Which planet is known as the Red Planet?",
				"hi": "लाल ग्रह के रूप में किस ग्रह को जाना जाता है?",
			},
			Options: map[string][]string{
				"en": {"Venus", "Mars", "Jupiter", "Saturn"},
				"hi": {"शुक्र", "मंगल", "बृहस्पति", "शनि"},
			},
			Answer: "Mars",
			Explanation: map[string]string{
				"en": "Mars is often called the Red Planet due to its reddish appearance.",
				"hi": "मंगल ग्रह को अक्सर इसके लाल रंग की उपस्थिति के कारण लाल ग्रह कहा जाता है।",
			},
		},
		{
			Prompt: map[string]string{
				"en": "What is the capital of France?",
				"hi": "फ्रांस की राजधानी क्या है?",
			},
			Options: map[string][]string{
				"en": {"London", "Berlin", "Paris", "Madrid"},
				"hi": {"लंदन", "बर्लिन", "पेरिस", "मैड्रिड"},
			},
			Answer: "Paris",
			Explanation: map[string]string{
				"en": "Paris is the capital and most populous city of France.",
				"hi": "पेरिस फ्रांस की राजधानी और सबसे अधिक आबादी वाला शहर है।",
			},
		},
	}
}
