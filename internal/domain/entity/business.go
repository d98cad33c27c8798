package entity

import "time"

// Business represents the registered business (tenant) operating the system.
// GSTIN identifies it with the tax authority; UPIAddress is printed as a
// payment QR on invoice PDFs.
type Business struct {
	ID         string
	Name       string
	GSTIN      string
	Address    string
	Phone      string
	Email      string
	UPIAddress string // VPA, e.g. shop@upi; empty = no payment QR on invoices
	Status     string // active, suspended, inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
