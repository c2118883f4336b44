// Package lifecycle builds delivery projects from accepted deal terms and
// derives their progress and schedule reports. Task and deliverable lists
// come from fixed per-service templates; scheduling evenly partitions the
// project timeline across tasks.
package lifecycle

// TaskTemplate is one named stage in a service's delivery plan.
type TaskTemplate struct {
	Name        string
	Description string
}

// DeliverableTemplate is one expected artifact for a service type.
type DeliverableTemplate struct {
	Type        string
	Description string
}

var taskTemplates = map[string][]TaskTemplate{
	"content_creation": {
		{Name: "Research", Description: "Research topic and gather information"},
		{Name: "Outline", Description: "Create content outline"},
		{Name: "Draft", Description: "Write first draft"},
		{Name: "Review", Description: "Internal review and editing"},
		{Name: "Finalize", Description: "Finalize content and format"},
	},
	"web_development": {
		{Name: "Requirements", Description: "Gather detailed requirements"},
		{Name: "Design", Description: "Create website design"},
		{Name: "Development", Description: "Develop website"},
		{Name: "Testing", Description: "Test website functionality"},
		{Name: "Deployment", Description: "Deploy website"},
	},
	"data_analysis": {
		{Name: "Data Collection", Description: "Collect and organize data"},
		{Name: "Data Cleaning", Description: "Clean and prepare data"},
		{Name: "Analysis", Description: "Perform data analysis"},
		{Name: "Visualization", Description: "Create data visualizations"},
		{Name: "Report", Description: "Generate analysis report"},
	},
}

var defaultTaskTemplate = []TaskTemplate{
	{Name: "Planning", Description: "Plan project execution"},
	{Name: "Execution", Description: "Execute project tasks"},
	{Name: "Review", Description: "Review project results"},
	{Name: "Delivery", Description: "Deliver project results"},
}

var deliverableTemplates = map[string][]DeliverableTemplate{
	"content_creation": {
		{Type: "content", Description: "Final content document"},
	},
	"web_development": {
		{Type: "website", Description: "Completed website"},
		{Type: "documentation", Description: "Website documentation"},
	},
	"data_analysis": {
		{Type: "data_analysis", Description: "Data analysis report"},
		{Type: "visualization", Description: "Data visualizations"},
	},
}

var defaultDeliverableTemplate = []DeliverableTemplate{
	{Type: "report", Description: "Project report"},
}

// TasksFor returns the task template for the service type, falling back to
// the generic template for unknown types.
func TasksFor(serviceType string) []TaskTemplate {
	if tpl, ok := taskTemplates[serviceType]; ok {
		return tpl
	}
	return defaultTaskTemplate
}

// DeliverablesFor returns the deliverable template for the service type,
// falling back to the generic template for unknown types.
func DeliverablesFor(serviceType string) []DeliverableTemplate {
	if tpl, ok := deliverableTemplates[serviceType]; ok {
		return tpl
	}
	return defaultDeliverableTemplate
}
