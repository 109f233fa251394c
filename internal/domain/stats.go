package domain

// StatusCounts tallies records of one kind by status.
type StatusCounts struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
	Completed int
}

// Add counts one record in status s.
func (c *StatusCounts) Add(s Status) {
	c.AddN(s, 1)
}

// AddN counts n records in status s. Unknown statuses are ignored.
func (c *StatusCounts) AddN(s Status, n int) {
	switch s {
	case StatusPending:
		c.Pending += n
	case StatusConfirmed:
		c.Confirmed += n
	case StatusCancelled:
		c.Cancelled += n
	case StatusCompleted:
		c.Completed += n
	default:
		return
	}
	c.Total += n
}

// Get returns the count for s.
func (c StatusCounts) Get(s Status) int {
	switch s {
	case StatusPending:
		return c.Pending
	case StatusConfirmed:
		return c.Confirmed
	case StatusCancelled:
		return c.Cancelled
	case StatusCompleted:
		return c.Completed
	}
	return 0
}

// Stats is the dashboard aggregate over both kinds.
type Stats struct {
	Appointments StatusCounts
	Classes      StatusCounts
}

// For returns a pointer to the counts of kind k, or nil for an unknown kind.
func (s *Stats) For(k Kind) *StatusCounts {
	switch k {
	case KindAppointment:
		return &s.Appointments
	case KindClass:
		return &s.Classes
	}
	return nil
}

// CountRecords tallies recs by status.
func CountRecords(recs []Record) StatusCounts {
	var c StatusCounts
	for _, r := range recs {
		c.Add(r.Status)
	}
	return c
}
