package service

import "persona-quiz/internal/domain"

// DefaultQuestions returns the static questionnaire. The order is part of the
// scoring contract: answers are matched to questions by index.
func DefaultQuestions() []domain.Question {
	return []domain.Question{
		{Text: "You enjoy social events with lots of people.", Pole: domain.PoleE},
		{Text: "You prefer to plan things rather than being spontaneous.", Pole: domain.PoleJ},
		{Text: "You rely more on logic than emotions when making decisions.", Pole: domain.PoleT},
		{Text: "You enjoy spending time alone rather than with people.", Pole: domain.PoleI},
		{Text: "You focus more on details than the big picture.", Pole: domain.PoleS},
		{Text: "You follow your heart rather than your head.", Pole: domain.PoleF},
		{Text: "You like abstract ideas more than concrete facts.", Pole: domain.PoleN},
		{Text: "You prefer structured environments over flexible ones.", Pole: domain.PoleJ},
		{Text: "You act first and think later.", Pole: domain.PoleP},
		{Text: "You enjoy deep discussions rather than small talk.", Pole: domain.PoleI},
	}
}

var personalityDescriptions = map[domain.PersonalityType]string{
	"ISTJ": "Practical, responsible, and organized. You value stability and are known for your reliability.",
	"ISFJ": "Caring, dedicated, and detail-oriented. You're a loyal protector with excellent memory for details.",
	"INFJ": "Insightful, creative, and idealistic. You seek meaning and connection in ideas and relationships.",
	"INTJ": "Strategic, independent, and analytical. You excel at developing innovative solutions to complex problems.",
	"ISTP": "Practical problem-solver who enjoys understanding how things work. You're adaptable and action-oriented.",
	"ISFP": "Artistic, sensitive, and compassionate. You value personal space and appreciate beauty in the world.",
	"INFP": "Idealistic, empathetic, and creative. You're driven by deep personal values and seek authenticity.",
	"INTP": "Logical, curious, and inventive. You enjoy theoretical models and questioning assumptions.",
	"ESTP": "Energetic, pragmatic, and spontaneous. You enjoy taking risks and are excellent at problem-solving.",
	"ESFP": "Enthusiastic, friendly, and adaptable. You enjoy the present moment and bringing others together.",
	"ENFP": "Creative, enthusiastic, and possibilities-focused. You enjoy connecting with people and ideas.",
	"ENTP": "Innovative, strategic, and outspoken. You enjoy intellectual challenges and thinking outside the box.",
	"ESTJ": "Efficient, logical, and traditional. You value structure and are natural at implementing systems.",
	"ESFJ": "Caring, popular, and traditional. You're focused on creating harmony and are very people-oriented.",
	"ENFJ": "Charismatic, empathetic, and inspiring. You're focused on helping others develop and grow.",
	"ENTJ": "Strategic, decisive, and ambitious. You're a natural leader who enjoys creating efficient systems.",
}

// DescribeType returns the short description for a personality type, or an
// empty string for codes outside the 16 known types.
func DescribeType(t domain.PersonalityType) string {
	return personalityDescriptions[t]
}
