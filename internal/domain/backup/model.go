package backup

import "time"

const Version = 1

// Row is one table row keyed by native column name.
type Row map[string]any

type Snapshot struct {
	Version    int              `json:"version"`
	ExportedAt string           `json:"exportedAt"`
	Data       map[string][]Row `json:"data"`
}

// Counts maps a table key to the number of rows restored into it.
type Counts map[string]int

type Table struct {
	Key  string
	Name string
	// Optional tables are left untouched by a restore whose payload omits
	// their key. Payloads written before the table existed stay restorable.
	Optional bool
}

var (
	TableMembers          = Table{Key: "members", Name: "members"}
	TableInsurers         = Table{Key: "insurers", Name: "insurers"}
	TableAssets           = Table{Key: "assets", Name: "assets"}
	TablePolicies         = Table{Key: "policies", Name: "policies"}
	TableBeneficiaries    = Table{Key: "beneficiaries", Name: "beneficiaries"}
	TablePayments         = Table{Key: "payments", Name: "payments"}
	TableCashValues       = Table{Key: "cashValues", Name: "cash_values"}
	TablePolicyExtensions = Table{Key: "policyExtensions", Name: "policy_extensions"}
	TableCoverageItems    = Table{Key: "coverageItems", Name: "coverage_items", Optional: true}
	TableSettings         = Table{Key: "settings", Name: "settings"}
)

// InsertOrder lists tables parent first.
var InsertOrder = []Table{
	TableMembers,
	TableInsurers,
	TableAssets,
	TablePolicies,
	TableBeneficiaries,
	TablePayments,
	TableCashValues,
	TablePolicyExtensions,
	TableCoverageItems,
	TableSettings,
}

// DeleteOrder lists tables child first.
var DeleteOrder = []Table{
	TablePolicyExtensions,
	TableCoverageItems,
	TableCashValues,
	TablePayments,
	TableBeneficiaries,
	TablePolicies,
	TableAssets,
	TableInsurers,
	TableMembers,
	TableSettings,
}

// Filename is the suggested download name for a snapshot taken at now.
func Filename(now time.Time) string {
	return "surety-backup-" + now.UTC().Format(time.DateOnly) + ".json"
}
