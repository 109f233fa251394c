package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/studio-bookings/internal/config"
	"github.com/heartmarshall/studio-bookings/internal/domain"
	"github.com/heartmarshall/studio-bookings/internal/transport/wire"
)

// printer renders command results in the selected output format.
type printer struct {
	format string
	w      io.Writer
}

// structured writes v as JSON or YAML. It reports false for text output.
func (p *printer) structured(v any) (bool, error) {
	switch p.format {
	case config.FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func (p *printer) records(kind domain.Kind, recs []domain.Record) error {
	if ok, err := p.structured(wire.FromRecords(recs)); ok {
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	switch kind {
	case domain.KindAppointment:
		fmt.Fprintln(tw, "ID\tSTATUS\tNAME\tPHONE\tSERVICE\tDATE\tTIME\tUPDATED")
		for _, r := range recs {
			a := r.Appointment
			if a == nil {
				a = &domain.AppointmentDetails{}
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Status, r.Contact.Name, r.Contact.Phone,
				a.Service, a.Date.Format(domain.DateLayout), a.Time, formatTime(r.UpdatedAt))
		}
	case domain.KindClass:
		fmt.Fprintln(tw, "ID\tSTATUS\tNAME\tPHONE\tCLASS\tEXPERIENCE\tSCHEDULE\tUPDATED")
		for _, r := range recs {
			e := r.Enrollment
			if e == nil {
				e = &domain.EnrollmentDetails{}
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Status, r.Contact.Name, r.Contact.Phone,
				e.ClassType, e.ExperienceLevel, e.PreferredSchedule, formatTime(r.UpdatedAt))
		}
	}
	if len(recs) == 0 {
		fmt.Fprintf(tw, "no %s\n", kind.Plural())
	}
	return tw.Flush()
}

func (p *printer) record(rec domain.Record) error {
	if ok, err := p.structured(wire.FromRecord(rec)); ok {
		return err
	}
	_, err := fmt.Fprintf(p.w, "%s %s is now %s (updated %s)\n",
		rec.Kind, rec.ID, rec.Status, formatTime(rec.UpdatedAt))
	return err
}

func (p *printer) stats(s domain.Stats) error {
	if ok, err := p.structured(wire.FromStats(s)); ok {
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tTOTAL\tPENDING\tCONFIRMED\tCANCELLED\tCOMPLETED\t")
	for _, k := range domain.AllKinds() {
		c := s.For(k)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t\n",
			k.Plural(), c.Total, c.Pending, c.Confirmed, c.Cancelled, c.Completed)
	}
	return tw.Flush()
}

func (p *printer) admin(a domain.Admin) error {
	if ok, err := p.structured(wire.FromAdmin(a)); ok {
		return err
	}
	_, err := fmt.Fprintf(p.w, "%s <%s> (%s)\n", a.Name, a.Email, a.ID)
	return err
}

// loginResult is what login prints in structured formats.
type loginResult struct {
	Token     string     `json:"token"                yaml:"token"`
	Admin     wire.Admin `json:"admin"                yaml:"admin"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

func (p *printer) login(sess *domain.OperatorSession) error {
	if ok, err := p.structured(loginResult{
		Token: sess.Token, Admin: wire.FromAdmin(sess.Admin), ExpiresAt: sess.ExpiresAt,
	}); ok {
		return err
	}

	fmt.Fprintf(p.w, "logged in as %s <%s>\n", sess.Admin.Name, sess.Admin.Email)
	if sess.ExpiresAt != nil {
		fmt.Fprintf(p.w, "session expires %s\n", formatTime(*sess.ExpiresAt))
	}
	_, err := fmt.Fprintf(p.w, "export BOOKING_TOKEN=%s\n", sess.Token)
	return err
}

func (p *printer) message(format string, args ...any) error {
	if ok, err := p.structured(map[string]string{"message": fmt.Sprintf(format, args...)}); ok {
		return err
	}
	_, err := fmt.Fprintf(p.w, format+"\n", args...)
	return err
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
