package dto

import "github.com/shopspring/decimal"

// PayJobRequest - тело POST /api/jobs/:job_id/pay.
type PayJobRequest struct {
	ContractorID string `json:"contractor_id" binding:"required"`
}

// DepositRequest - тело POST /api/balances/deposit/:userId.
// Amount указателем: нулевая сумма допустима и отличается от отсутствующей.
type DepositRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// ReportQuery - параметры отчётов администратора.
type ReportQuery struct {
	Start  string `form:"start"`
	End    string `form:"end"`
	Limit  string `form:"limit"`
	Format string `form:"format"`
}
