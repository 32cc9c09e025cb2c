package types

type ReportType string

const (
	ReportTypeChapter ReportType = "chapter"
	ReportTypeNovel   ReportType = "novel"
	ReportTypeOther   ReportType = "other"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeChapter, ReportTypeNovel, ReportTypeOther:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusRejected  ReportStatus = "rejected"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewing, ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}
