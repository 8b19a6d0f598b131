package memoryRepo

import (
	addressRepo "scrapiz/database/repository/address"
	bookingRepo "scrapiz/database/repository/booking"
	profileRepo "scrapiz/database/repository/profile"
)

var (
	_ addressRepo.AddressRepository    = (*AddressRepo)(nil)
	_ bookingRepo.BookingRepository    = (*BookingRepo)(nil)
	_ bookingRepo.SubmissionRepository = (*BookingRepo)(nil)
	_ profileRepo.ProfileRepository    = (*ProfileRepo)(nil)
)
