package constants

const (
	ViewData         = "view_data"
	CreateContract   = "create_contract"
	RecordDailyEntry = "record_daily_entry"
	RunKnockoutCheck = "run_knockout_check"
	AllocateBushels  = "allocate_bushels"
	ManageUsers      = "manage_users"
)
