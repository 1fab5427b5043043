package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalStatus is the lifecycle state of a savings goal.
//
// The state machine is strictly one-way: ACTIVE may become COMPLETED or
// DELETED, COMPLETED may become DELETED, DELETED is terminal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "ACTIVE"
	GoalStatusCompleted GoalStatus = "COMPLETED"
	GoalStatusDeleted   GoalStatus = "DELETED"
)

// Valid reports whether the status is one of the known values.
func (s GoalStatus) Valid() bool {
	return s == GoalStatusActive || s == GoalStatusCompleted || s == GoalStatusDeleted
}

// Goal is a savings goal of a user.
type Goal struct {
	DefaultModel
	UserID        uuid.UUID       `json:"userId" gorm:"index"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal `json:"currentAmount" gorm:"type:DECIMAL(20,8)"`
	Type          string          `json:"goalType,omitempty"`
	StartDate     time.Time       `json:"startDate"`
	TargetDate    time.Time       `json:"targetDate"`
	Status        GoalStatus      `json:"status"`
}

// GoalUpdate carries the descriptive fields of a goal. An update
// replaces them wholesale; the accumulated amount and the status are
// never touched by an update.
type GoalUpdate struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Type         string          `json:"goalType"`
	StartDate    time.Time       `json:"startDate"`
	TargetDate   time.Time       `json:"targetDate"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if err := g.DefaultModel.BeforeCreate(tx); err != nil {
		return err
	}

	// Goals start ACTIVE with nothing saved yet.
	if g.Status == "" {
		g.Status = GoalStatusActive
	}

	return nil
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Description = strings.TrimSpace(g.Description)

	if g.UserID == uuid.Nil {
		return ErrGoalUserRequired
	}

	if !g.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	if g.Status != "" && !g.Status.Valid() {
		return ErrGoalStatusInvalid
	}

	return nil
}

// RecordProgress adds a contribution to the goal.
//
// The amount must be positive and the goal must not be DELETED. When
// the accumulated amount reaches the target the goal completes.
// Completion is monotonic: further contributions still accumulate (the
// amount may overshoot the target) but the status never reverts to
// ACTIVE.
func (g *Goal) RecordProgress(amount decimal.Decimal) error {
	if g.Status == GoalStatusDeleted {
		return ErrGoalDeletedProgress
	}

	if !amount.IsPositive() {
		return ErrGoalProgressNotPositive
	}

	g.CurrentAmount = g.CurrentAmount.Add(amount)
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalStatusCompleted
	}

	return nil
}

// ApplyUpdate replaces the descriptive fields of the goal. Rejected
// when the goal is DELETED.
func (g *Goal) ApplyUpdate(update GoalUpdate) error {
	if g.Status == GoalStatusDeleted {
		return ErrGoalDeleted
	}

	g.Name = update.Name
	g.Description = update.Description
	g.TargetAmount = update.TargetAmount
	g.Type = update.Type
	g.StartDate = update.StartDate
	g.TargetDate = update.TargetDate

	return nil
}

// SoftDelete marks the goal DELETED unconditionally. The row is kept
// for audit and only excluded from active listings.
func (g *Goal) SoftDelete() {
	g.Status = GoalStatusDeleted
}

// ProgressPercentage is the accumulated amount as a percentage of the
// target, rounded half-up at four fractional digits of the quotient.
// It is deliberately uncapped and exceeds 100 on overshoot; clamping is
// a display concern. A non-positive target yields zero.
func (g Goal) ProgressPercentage() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}

	return g.CurrentAmount.DivRound(g.TargetAmount, 4).Mul(decimal.NewFromInt(100))
}

// ActiveGoals returns all goals of a user except DELETED ones.
func ActiveGoals(userID uuid.UUID) ([]Goal, error) {
	var goals []Goal
	err := DB.
		Where("user_id = ?", userID).
		Where("status != ?", GoalStatusDeleted).
		Order("created_at ASC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}

	return goals, nil
}
