package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

// DateLayout is the storage format of Appointment.Date.
const DateLayout = "2006-01-02"

type Appointment struct {
	ID              string            `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          string            `json:"user_id" gorm:"type:uuid;not null;index"`
	PackageID       string            `json:"package_id" gorm:"type:uuid;not null"`
	Date            string            `json:"date" gorm:"type:varchar(10);not null"`
	Time            string            `json:"time" gorm:"not null"`
	Location        string            `json:"location" gorm:"not null"`
	Notes           string            `json:"notes"`
	ServiceType     string            `json:"service_type" gorm:"not null"`
	Status          AppointmentStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	PaymentStatus   PaymentStatus     `json:"payment_status" gorm:"type:varchar(16);not null;default:'unpaid'"`
	StripeSessionID string            `json:"-" gorm:"index"`
	Package         *Package          `json:"package,omitempty" gorm:"foreignKey:PackageID"`
	Profile         *Profile          `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Day returns the appointment date as UTC midnight.
func (a *Appointment) Day() (time.Time, error) {
	return time.ParseInLocation(DateLayout, a.Date, time.UTC)
}

// BookingDetails is the schedule form of the booking flow.
type BookingDetails struct {
	Date        string `json:"date" validate:"omitempty,booking_date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
	ServiceType string `json:"service_type"`
}

type BookingRequest struct {
	PackageID string `json:"package_id" validate:"required"`
	BookingDetails
}

type AppointmentStatusRequest struct {
	Status        AppointmentStatus `json:"status"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
}

type CancelRequest struct {
	Confirm bool `json:"confirm"`
}
