package create_booking

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/phone"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

const (
	fieldRequired     = "Required"
	fieldTooLong      = "Too long"
	fieldChooseTime   = "Choose time in calendar"
	fieldInvalidPhone = "Invalid phone number"
	fieldInvalidDate  = "Invalid date"
	fieldInvalidTime  = "Invalid time"
)

// command нормализованный запрос
type command struct {
	slotID       string
	workshopID   string
	date         time.Time
	time         types.TimeString
	name         string
	phone        string
	messenger    string
	participants int
	comment      *string
}

func (c *command) bySlotID() bool {
	return c.slotID != ""
}

// validateRequest проверяет запрос и приводит поля к каноническому виду
func validateRequest(req *Request) (*command, error) {
	if strings.TrimSpace(req.Honeypot) != "" {
		return nil, ErrSpamDetected
	}

	fields := make(map[string]string)
	cmd := &command{
		slotID:       strings.TrimSpace(req.SlotID),
		workshopID:   strings.TrimSpace(req.WorkshopID),
		name:         strings.TrimSpace(req.Name),
		messenger:    strings.TrimSpace(req.Messenger),
		participants: domain.DefaultParticipants,
	}

	if !cmd.bySlotID() {
		dateRaw := strings.TrimSpace(req.Date)
		timeRaw := strings.TrimSpace(req.Time)

		if cmd.workshopID == "" || dateRaw == "" || timeRaw == "" {
			fields["slotId"] = fieldChooseTime
		} else {
			date, err := time.Parse(domain.DateFormat, dateRaw)
			if err != nil {
				fields["date"] = fieldInvalidDate
			}
			cmd.date = date

			t, err := types.NewTimeStringFromString(timeRaw)
			if err != nil {
				fields["time"] = fieldInvalidTime
			}
			cmd.time = t
		}
	}

	switch {
	case cmd.name == "":
		fields["name"] = fieldRequired
	case utf8.RuneCountInString(cmd.name) > domain.MaxNameLength:
		fields["name"] = fieldTooLong
	}

	switch {
	case cmd.messenger == "":
		fields["messenger"] = fieldRequired
	case utf8.RuneCountInString(cmd.messenger) > domain.MaxMessengerLength:
		fields["messenger"] = fieldTooLong
	}

	if strings.TrimSpace(req.Phone) == "" {
		fields["phone"] = fieldRequired
	} else if normalized, err := phone.NormalizeRU(req.Phone); err != nil {
		fields["phone"] = fieldInvalidPhone
	} else {
		cmd.phone = normalized
	}

	if req.Participants != nil && *req.Participants >= domain.MinParticipants {
		cmd.participants = *req.Participants
	}

	if req.Comment != nil {
		comment := strings.TrimSpace(*req.Comment)
		if utf8.RuneCountInString(comment) > domain.MaxCommentLength {
			fields["comment"] = fieldTooLong
		} else if comment != "" {
			cmd.comment = &comment
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return cmd, nil
}
