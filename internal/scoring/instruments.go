package scoring

import "vetsupport/internal/model"

// AnswerOption is one choice on an instrument's response scale
type AnswerOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Instrument describes a questionnaire for the client to render
type Instrument struct {
	Type        model.InstrumentType `json:"type"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Timeframe   string               `json:"timeframe"`
	Questions   []string             `json:"questions"`
	Options     []AnswerOption       `json:"options"`
}

var pcl5Questions = []string{
	"Repeated, disturbing, and unwanted memories of the stressful experience?",
	"Repeated, disturbing dreams of the stressful experience?",
	"Suddenly feeling or acting as if the stressful experience were actually happening again?",
	"Feeling very upset when something reminded you of the stressful experience?",
	"Having strong physical reactions when something reminded you of the stressful experience?",
	"Avoiding memories, thoughts, or feelings related to the stressful experience?",
	"Avoiding external reminders of the stressful experience?",
	"Trouble remembering important parts of the stressful experience?",
	"Having strong negative beliefs about yourself, other people, or the world?",
	"Blaming yourself or someone else for the stressful experience or what happened after it?",
	"Having strong negative feelings such as fear, horror, anger, guilt, or shame?",
	"Loss of interest in activities that you used to enjoy?",
	"Feeling distant or cut off from other people?",
	"Trouble experiencing positive feelings?",
	"Irritable behavior, angry outbursts, or acting aggressively?",
	"Taking too many risks or doing things that could cause you harm?",
	"Being 'superalert' or watchful or on guard?",
	"Feeling jumpy or easily startled?",
	"Having difficulty concentrating?",
	"Trouble falling or staying asleep?",
}

var phq9Questions = []string{
	"Little interest or pleasure in doing things",
	"Feeling down, depressed, or hopeless",
	"Trouble falling or staying asleep, or sleeping too much",
	"Feeling tired or having little energy",
	"Poor appetite or overeating",
	"Feeling bad about yourself or that you are a failure or have let yourself or your family down",
	"Trouble concentrating on things, such as reading the newspaper or watching television",
	"Moving or speaking so slowly that other people could have noticed, or the opposite - being so fidgety or restless that you have been moving around a lot more than usual",
	"Thoughts that you would be better off dead, or of hurting yourself",
}

var pcl5Options = []AnswerOption{
	{Value: 0, Label: "Not at all"},
	{Value: 1, Label: "A little bit"},
	{Value: 2, Label: "Moderately"},
	{Value: 3, Label: "Quite a bit"},
	{Value: 4, Label: "Extremely"},
}

var phq9Options = []AnswerOption{
	{Value: 0, Label: "Not at all"},
	{Value: 1, Label: "Several days"},
	{Value: 2, Label: "More than half the days"},
	{Value: 3, Label: "Nearly every day"},
}

// Instruments returns the supported questionnaires with their item text
// and response scales.
func Instruments() []Instrument {
	return []Instrument{
		{
			Type:        model.InstrumentPCL5,
			Title:       "PCL-5 Assessment",
			Description: "PTSD Checklist for DSM-5. Screens for post-traumatic stress symptoms related to military service and combat exposure.",
			Timeframe:   "past month",
			Questions:   pcl5Questions,
			Options:     pcl5Options,
		},
		{
			Type:        model.InstrumentPHQ9,
			Title:       "PHQ-9 Assessment",
			Description: "Patient Health Questionnaire-9. Screens for depression symptoms and severity levels.",
			Timeframe:   "last 2 weeks",
			Questions:   phq9Questions,
			Options:     phq9Options,
		},
	}
}
