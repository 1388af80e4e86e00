package model

// FunctionGroup is the fixed taxonomy label for a contact's organizational role.
type FunctionGroup string

// The closed set of function group labels. Classification returns exactly one
// of these; FunctionGroupUnknown is reserved for records without a job title,
// FunctionGroupOther for titles that match no keyword group.
const (
	FunctionGroupOwner      FunctionGroup = "Owner/Founder"
	FunctionGroupMarketing  FunctionGroup = "Marketing Decision Makers"
	FunctionGroupSales      FunctionGroup = "Sales Decision Makers"
	FunctionGroupTechnical  FunctionGroup = "Technical Decision Makers"
	FunctionGroupFinance    FunctionGroup = "Financial Decision Makers"
	FunctionGroupHR         FunctionGroup = "HR Decision Makers"
	FunctionGroupOperations FunctionGroup = "Operations Decision Makers"
	FunctionGroupProduct    FunctionGroup = "Product Decision Makers"
	FunctionGroupCustomer   FunctionGroup = "Customer Success"
	FunctionGroupOther      FunctionGroup = "Other"
	FunctionGroupUnknown    FunctionGroup = "Unknown"
)
