package leave

import "time"

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

// Request adalah satu pengajuan cuti/izin milik seorang karyawan. Blob
// per karyawan menyimpan daftar ini terbaru-dulu; field JSON mengikuti
// format blob yang sudah beredar.
type Request struct {
	ID           string     `json:"id"`
	Subject      string     `json:"subject"`
	Type         string     `json:"type"`
	DateFrom     string     `json:"from"`
	DateTo       string     `json:"to"`
	Message      string     `json:"message"`
	Status       string     `json:"status"`
	AdminComment *string    `json:"adminComment,omitempty"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
	CreatedAt    time.Time  `json:"created"`
}

// Decided reports whether the request reached a terminal state.
func (r Request) Decided() bool {
	return r.Status != StatusPending
}

const dateLayout = "2006-01-02"

// OverlapsRange memeriksa irisan [from,to] dengan [start,end] inklusif.
// Tanggal mulai yang tidak valid berarti request tidak pernah cocok
// dengan filter minggu; tanggal akhir yang tidak valid jatuh ke tanggal
// mulai.
func (r Request) OverlapsRange(start, end time.Time) bool {
	from, err := time.ParseInLocation(dateLayout, r.DateFrom, time.Local)
	if err != nil {
		return false
	}
	to, err := time.ParseInLocation(dateLayout, r.DateTo, time.Local)
	if err != nil {
		to = from
	}
	return !to.Before(start) && !from.After(end)
}
