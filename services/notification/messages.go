package notification

import (
	"fmt"

	"scrapiz/models"
)

var hindiStatus = map[models.BookingStatus]string{
	models.StatusScheduled:  "निर्धारित",
	models.StatusAgentOnWay: "एजेंट रास्ते में है",
	models.StatusInProgress: "प्रगति में",
	models.StatusCompleted:  "पूर्ण",
	models.StatusCancelled:  "रद्द",
}

func statusMessage(lang models.Language, b models.Booking) (string, string) {
	if lang == models.LanguageHindi {
		return "बुकिंग अपडेट",
			fmt.Sprintf("आपकी %s पिकअप (%s, %s) की स्थिति: %s", b.MaterialCategory.Label(), b.PickupDate, b.TimeSlot, hindiStatus[b.Status])
	}
	return "Booking update",
		fmt.Sprintf("Your %s pickup on %s (%s) is now %s.", b.MaterialCategory.Label(), b.PickupDate, b.TimeSlot, b.Status.Label())
}

func reminderMessage(lang models.Language, b models.Booking) (string, string) {
	if lang == models.LanguageHindi {
		return "आज पिकअप है",
			fmt.Sprintf("आपकी %s पिकअप आज %s के बीच है।", b.MaterialCategory.Label(), b.TimeSlot)
	}
	return "Pickup today",
		fmt.Sprintf("Your %s pickup is scheduled today between %s.", b.MaterialCategory.Label(), b.TimeSlot)
}
