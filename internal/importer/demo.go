package importer

import (
	"examforge/constants"
	"examforge/internal/entity"
	"examforge/internal/parse"
)

const (
	demoFilename = "demo_questions"
	demoInfo     = "No PDFs found. Demo questions available for testing."
)

// fillDemoSession loads the built-in sample set into an otherwise empty
// session. Demo questions are never tied to a source file and never
// produce import records.
func fillDemoSession(session *ScanSession) {
	questions := demoQuestions()
	report := parse.NewReport(demoFilename)
	report.Questions = questions
	report.TotalQuestions = len(questions)
	report.ValidQuestions = len(questions)

	session.Demo = true
	session.Reports = []*FileReport{{Report: report}}
	session.Questions = questions
	session.Issues.Info = demoInfo
}

func demoQuestions() []*parse.Question {
	return []*parse.Question{
		{
			Text: "You need to create a new Azure subscription. What should you use?",
			Choices: []entity.Choice{
				{Label: "A", Text: "Azure portal"},
				{Label: "B", Text: "Azure PowerShell"},
				{Label: "C", Text: "Azure CLI"},
				{Label: "D", Text: "Azure Resource Manager templates"},
			},
			CorrectAnswers: []string{"A"},
			Explanation:    "New subscriptions are typically created through the Azure portal or programmatically via the Azure Account API.",
			QuestionType:   constants.QuestionSingle,
			DomainID:       "identity-governance",
			SourcePage:     1,
		},
		{
			Text: "Which Azure storage redundancy option replicates data across multiple availability zones?",
			Choices: []entity.Choice{
				{Label: "A", Text: "Locally redundant storage (LRS)"},
				{Label: "B", Text: "Zone-redundant storage (ZRS)"},
				{Label: "C", Text: "Geo-redundant storage (GRS)"},
				{Label: "D", Text: "Read-access geo-redundant storage (RA-GRS)"},
			},
			CorrectAnswers: []string{"B"},
			Explanation:    "Zone-redundant storage (ZRS) replicates data synchronously across three Azure availability zones in the primary region.",
			QuestionType:   constants.QuestionSingle,
			DomainID:       "storage",
			SourcePage:     1,
		},
		{
			Text: "You need to deploy a virtual machine that requires the lowest possible latency to an existing VM. What should you use?",
			Choices: []entity.Choice{
				{Label: "A", Text: "Availability set"},
				{Label: "B", Text: "Availability zone"},
				{Label: "C", Text: "Proximity placement group"},
				{Label: "D", Text: "Virtual machine scale set"},
			},
			CorrectAnswers: []string{"C"},
			Explanation:    "Proximity placement groups place VMs physically close together in the same datacenter to minimize latency.",
			QuestionType:   constants.QuestionSingle,
			DomainID:       "compute",
			SourcePage:     1,
		},
		{
			Text: "Which of the following can be used to filter network traffic between subnets? (Choose two)",
			Choices: []entity.Choice{
				{Label: "A", Text: "Network security groups (NSG)"},
				{Label: "B", Text: "Application security groups (ASG)"},
				{Label: "C", Text: "Azure Firewall"},
				{Label: "D", Text: "Azure Load Balancer"},
			},
			CorrectAnswers: []string{"A", "C"},
			Explanation:    "NSGs and Azure Firewall can filter traffic between subnets. ASGs are used to group VMs, and Load Balancer distributes traffic.",
			QuestionType:   constants.QuestionMulti,
			DomainID:       "networking",
			SourcePage:     1,
		},
		{
			Text: "You need to configure alerts for when a VM's CPU usage exceeds 80%. Which Azure service should you use?",
			Choices: []entity.Choice{
				{Label: "A", Text: "Azure Monitor"},
				{Label: "B", Text: "Azure Advisor"},
				{Label: "C", Text: "Azure Service Health"},
				{Label: "D", Text: "Azure Activity Log"},
			},
			CorrectAnswers: []string{"A"},
			Explanation:    "Azure Monitor provides metric-based alerting for Azure resources including virtual machines.",
			QuestionType:   constants.QuestionSingle,
			DomainID:       "monitoring",
			SourcePage:     1,
		},
	}
}
