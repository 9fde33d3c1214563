package incentive

// TriggerType is the category of business event that can fire a bonus rule.
type TriggerType string

const (
	TriggerCollection       TriggerType = "COLLECTION"
	TriggerSale             TriggerType = "SALE"
	TriggerCustomerCreated  TriggerType = "CUSTOMER_CREATED"
	TriggerFullPayment      TriggerType = "FULL_PAYMENT"
	TriggerOnTimeCollection TriggerType = "ON_TIME_COLLECTION"
	TriggerRecovery         TriggerType = "RECOVERY"
	TriggerTargetHit        TriggerType = "TARGET_HIT"
	TriggerShopPerformance  TriggerType = "SHOP_PERFORMANCE"
	TriggerZeroDefault      TriggerType = "ZERO_DEFAULT"
)

// IsValid returns true if the trigger type is a known value
func (t TriggerType) IsValid() bool {
	switch t {
	case TriggerCollection, TriggerSale, TriggerCustomerCreated, TriggerFullPayment,
		TriggerOnTimeCollection, TriggerRecovery, TriggerTargetHit,
		TriggerShopPerformance, TriggerZeroDefault:
		return true
	}
	return false
}

// IsTargetBased returns true for triggers evaluated in aggregate over a
// period by the batch evaluator rather than per transaction.
func (t TriggerType) IsTargetBased() bool {
	switch t {
	case TriggerTargetHit, TriggerShopPerformance, TriggerZeroDefault:
		return true
	}
	return false
}

// TargetTriggers lists the trigger types handled by the batch evaluator
func TargetTriggers() []TriggerType {
	return []TriggerType{TriggerTargetHit, TriggerShopPerformance, TriggerZeroDefault}
}

// CalculationType determines how a rule's value is applied to a base amount.
type CalculationType string

const (
	CalculationPercentage  CalculationType = "PERCENTAGE"
	CalculationFixedAmount CalculationType = "FIXED_AMOUNT"
)

// IsValid returns true if the calculation type is a known value
func (c CalculationType) IsValid() bool {
	return c == CalculationPercentage || c == CalculationFixedAmount
}

// PeriodGranularity is the time bucket a rule accumulates awards within.
type PeriodGranularity string

const (
	PeriodOneTime   PeriodGranularity = "ONE_TIME"
	PeriodDaily     PeriodGranularity = "DAILY"
	PeriodWeekly    PeriodGranularity = "WEEKLY"
	PeriodMonthly   PeriodGranularity = "MONTHLY"
	PeriodQuarterly PeriodGranularity = "QUARTERLY"
	PeriodYearly    PeriodGranularity = "YEARLY"
)

// IsValid returns true if the granularity is a known value
func (p PeriodGranularity) IsValid() bool {
	switch p {
	case PeriodOneTime, PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// StaffRole is the role a rule targets and a staff member holds.
type StaffRole string

const (
	RoleDebtCollector StaffRole = "DEBT_COLLECTOR"
	RoleSalesStaff    StaffRole = "SALES_STAFF"
	RoleShopManager   StaffRole = "SHOP_MANAGER"
	RoleCashier       StaffRole = "CASHIER"
)

// IsValid returns true if the role is a known value
func (r StaffRole) IsValid() bool {
	switch r {
	case RoleDebtCollector, RoleSalesStaff, RoleShopManager, RoleCashier:
		return true
	}
	return false
}

// BonusStatus is the lifecycle state of a bonus record.
type BonusStatus string

const (
	StatusPending   BonusStatus = "PENDING"
	StatusApproved  BonusStatus = "APPROVED"
	StatusPaid      BonusStatus = "PAID"
	StatusRejected  BonusStatus = "REJECTED"
	StatusCancelled BonusStatus = "CANCELLED" // reserved for manual data correction
)

// IsValid returns true if the status is a known value
func (s BonusStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanApprove returns true if a record in this status may be approved
func (s BonusStatus) CanApprove() bool {
	return s == StatusPending
}

// CanPay returns true if a record in this status may be marked paid
func (s BonusStatus) CanPay() bool {
	return s == StatusPending || s == StatusApproved
}

// CanReject returns true if a record in this status may be rejected
func (s BonusStatus) CanReject() bool {
	return s == StatusPending || s == StatusApproved
}

// IsTerminal returns true if no further transitions are allowed
func (s BonusStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusRejected || s == StatusCancelled
}

// CountableStatuses are the statuses counted toward a rule's per-period cap:
// everything that has been or may still be paid out.
func CountableStatuses() []BonusStatus {
	return []BonusStatus{StatusPending, StatusApproved, StatusPaid}
}
