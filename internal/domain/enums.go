package domain

type LeadStatus string

const (
	LeadNew         LeadStatus = "new"
	LeadEnriched    LeadStatus = "enriched"
	LeadQualified   LeadStatus = "qualified"
	LeadTransferred LeadStatus = "transferred"
)

type DealStatus string

const (
	DealReceived     DealStatus = "received"
	DealOutreachSent DealStatus = "outreach_sent"
	DealEngaged      DealStatus = "engaged"
	DealProposalSent DealStatus = "proposal_sent"
	DealNegotiating  DealStatus = "negotiating"
	DealClosedWon    DealStatus = "closed_won"
	DealClosedLost   DealStatus = "closed_lost"
)

type ProjectStatus string

const (
	ProjectCreated    ProjectStatus = "created"
	ProjectPending    ProjectStatus = "pending"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectReview     ProjectStatus = "review"
	ProjectCompleted  ProjectStatus = "completed"
)

type TaskStatus string

const (
	TaskPending        TaskStatus = "pending"
	TaskInProgress     TaskStatus = "in_progress"
	TaskNeedsReview    TaskStatus = "needs_review"
	TaskRevisionNeeded TaskStatus = "revision_needed"
	TaskCompleted      TaskStatus = "completed"
)

type DeliverableStatus string

const (
	DeliverablePlanned       DeliverableStatus = "planned"
	DeliverablePendingReview DeliverableStatus = "pending_review"
	DeliverableApproved      DeliverableStatus = "approved"
	DeliverableRejected      DeliverableStatus = "rejected"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// ValidServiceTypes is the canonical set of accepted service type strings.
// Unknown service types fall back to the default task template.
var ValidServiceTypes = map[string]bool{
	"content_creation": true,
	"web_development":  true,
	"data_analysis":    true,
}

type RequestKind string

const (
	RequestPriceDiscount       RequestKind = "price_discount"
	RequestAdditionalRevisions RequestKind = "additional_revisions"
	RequestFeatureAddition     RequestKind = "feature_addition"
	RequestRushDelivery        RequestKind = "rush_delivery"
	RequestTimelineExtension   RequestKind = "timeline_extension"
)
