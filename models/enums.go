package models

// BookingStatus is the lifecycle state of a pickup booking.
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusAgentOnWay BookingStatus = "agent_on_way"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// AllStatuses lists statuses in lifecycle order.
var AllStatuses = []BookingStatus{
	StatusScheduled,
	StatusAgentOnWay,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

var statusLabels = map[BookingStatus]string{
	StatusScheduled:  "Scheduled",
	StatusAgentOnWay: "Agent On Way",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

func (s BookingStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s BookingStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// MaterialCategory is the kind of scrap to be picked up.
type MaterialCategory string

const (
	CategoryPaperCardboard MaterialCategory = "paper_cardboard"
	CategoryPlastic        MaterialCategory = "plastic"
	CategoryMetal          MaterialCategory = "metal"
	CategoryElectronics    MaterialCategory = "electronics"
	CategoryGlass          MaterialCategory = "glass"
)

var AllCategories = []MaterialCategory{
	CategoryPaperCardboard,
	CategoryPlastic,
	CategoryMetal,
	CategoryElectronics,
	CategoryGlass,
}

var categoryLabels = map[MaterialCategory]string{
	CategoryPaperCardboard: "Paper & Cardboard",
	CategoryPlastic:        "Plastic",
	CategoryMetal:          "Metal",
	CategoryElectronics:    "Electronics",
	CategoryGlass:          "Glass",
}

func (m MaterialCategory) Valid() bool {
	_, ok := categoryLabels[m]
	return ok
}

func (m MaterialCategory) Label() string {
	if l, ok := categoryLabels[m]; ok {
		return l
	}
	return string(m)
}

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentCash PaymentMethod = "cash"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentUPI || p == PaymentCash
}

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageHindi   Language = "hindi"
)

func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageHindi
}

// TimeSlots are the fixed pickup windows offered by the wizard.
var TimeSlots = []string{
	"9:00 AM - 11:00 AM",
	"11:00 AM - 1:00 PM",
	"1:00 PM - 3:00 PM",
	"3:00 PM - 5:00 PM",
	"5:00 PM - 7:00 PM",
}

func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// DateLayout is the wire format of pickup dates.
const DateLayout = "2006-01-02"
