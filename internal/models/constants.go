package models

// Роли профилей
const (
	ProfileRoleClient     = "client"
	ProfileRoleContractor = "contractor"
)

// ContractStatus константы статусов договоров
const (
	ContractStatusNew        = "new"
	ContractStatusInProgress = "in_progress"
	ContractStatusTerminated = "terminated"
)
