package models

import "time"

// TaxRecord is one customer's row in the tax records collection.
type TaxRecord struct {
	CustomerID   string    `bson:"customerId" json:"customerId"`
	FullName     string    `bson:"fullName" json:"fullName"`
	Province     string    `bson:"province" json:"province"`
	TaxYear      int       `bson:"taxYear" json:"taxYear"`
	Income       float64   `bson:"income" json:"income"`
	TaxOwed      float64   `bson:"taxOwed" json:"taxOwed"`
	TaxPaid      float64   `bson:"taxPaid" json:"taxPaid"`
	Balance      float64   `bson:"balance" json:"balance"`
	FilingStatus string    `bson:"filingStatus" json:"filingStatus"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
