package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var validGenders = map[string]bool{
	"male":   true,
	"female": true,
	"other":  true,
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}

	if req.PatientAge < domain.MinPatientAge || req.PatientAge > domain.MaxPatientAge {
		return fmt.Errorf("%w: patientAge must be between %d and %d", ErrInvalidInput, domain.MinPatientAge, domain.MaxPatientAge)
	}

	if !validGenders[req.PatientGender] {
		return fmt.Errorf("%w: patientGender must be one of male, female, other", ErrInvalidInput)
	}

	if !emailPattern.MatchString(req.PatientEmail) {
		return fmt.Errorf("%w: invalid patientEmail", ErrInvalidInput)
	}

	if digitCount(req.PatientPhone) != domain.PhoneDigits {
		return fmt.Errorf("%w: patientPhone must contain exactly %d digits", ErrInvalidInput, domain.PhoneDigits)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.CenterID <= 0 {
		return fmt.Errorf("%w: centerId must be positive", ErrInvalidInput)
	}

	appointmentType := domain.AppointmentType(req.AppointmentType)
	if appointmentType != domain.AppointmentLabVisit && appointmentType != domain.AppointmentHomeService {
		return fmt.Errorf("%w: appointmentType must be lab-visit or home-service", ErrInvalidInput)
	}

	// Выезд на дом невозможен без адреса
	if appointmentType == domain.AppointmentHomeService {
		if req.HomeAddress == nil || strings.TrimSpace(*req.HomeAddress) == "" {
			return fmt.Errorf("%w: homeAddress is required for home-service", ErrInvalidInput)
		}
		if req.PostalCode == nil || strings.TrimSpace(*req.PostalCode) == "" {
			return fmt.Errorf("%w: postalCode is required for home-service", ErrInvalidInput)
		}
	}

	if req.AppointmentDate.IsZero() {
		return fmt.Errorf("%w: appointmentDate is required", ErrInvalidInput)
	}

	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeSlot format: %v", ErrInvalidInput, err)
	}

	if req.PaymentMethod != nil {
		valid := false
		for _, m := range domain.ValidPaymentMethods {
			if string(m) == *req.PaymentMethod {
				valid = true
			}
		}
		if !valid {
			return fmt.Errorf("%w: invalid paymentMethod", ErrInvalidInput)
		}
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateHomeServiceAllowed проверяет, что услугу можно оказать на дому
// Категории с тяжёлым оборудованием (МРТ, КТ) запрещены всегда, вне зависимости
// от флага услуги
func validateHomeServiceAllowed(service *catalogservice.Service, appointmentType domain.AppointmentType) error {
	if appointmentType != domain.AppointmentHomeService {
		return nil
	}

	if domain.IsRestrictedCategory(service.Category) {
		return ErrRestrictedHomeService
	}

	if !service.HomeServiceEligible {
		return ErrHomeServiceNotAvailable
	}

	return nil
}

// digitCount считает цифры в строке: телефон может приходить с пробелами и дефисами
func digitCount(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
