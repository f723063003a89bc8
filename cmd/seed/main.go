package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"photodesk/internal/database"
	"photodesk/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "photodesk.db"
	}
	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Client{},
		&domain.CatalogService{},
		&domain.Package{},
		&domain.PackagePrice{},
		&domain.AddOn{},
		&domain.AddOnPrice{},
		&domain.Booking{},
		&domain.BookingAddOn{},
		&domain.BookingAssignment{},
		&domain.Event{},
		&domain.Photo{},
		&domain.DownloadSelection{},
		&domain.SelectionFile{},
		&domain.Payment{},
		&domain.Notification{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup in FK-safe order.
	log.Println("Cleaning old data...")
	for _, table := range []string{
		"notifications",
		"payments",
		"selection_files",
		"download_selections",
		"photos",
		"events",
		"booking_assignments",
		"booking_add_ons",
		"bookings",
		"add_on_prices",
		"add_ons",
		"package_prices",
		"packages",
		"catalog_services",
		"clients",
		"users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@photodesk.kz",
		PasswordHash: string(adminHash),
		Name:         "Admin",
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := domain.User{
		Email:        "staff@photodesk.kz",
		PasswordHash: string(staffHash),
		Name:         "Studio Staff",
		Role:         domain.RoleStaff,
	}
	db.Create(&staff)
	log.Println("Users created: admin@photodesk.kz / admin123, staff@photodesk.kz / staff123")

	log.Println("Creating clients...")
	clients := []domain.Client{
		{Name: "Asel Nurlanova", Email: "asel@mail.kz", Phone: "+7 777 123 4567", Country: domain.CountryKZ},
		{Name: "Bekzat Serik", Email: "bekzat@gmail.com", Phone: "+7 701 555 0101", Country: domain.CountryKZ},
		{Name: "Omar Haddad", Email: "omar@example.ae", Phone: "+971 50 123 4567", Country: domain.CountryAE},
	}
	for i := range clients {
		db.Create(&clients[i])
	}

	log.Println("Creating catalog...")
	wedding := domain.CatalogService{Name: "Wedding", Description: "Full wedding day coverage", Active: true}
	portrait := domain.CatalogService{Name: "Portrait", Description: "Studio and outdoor portrait sessions", Active: true}
	db.Create(&wedding)
	db.Create(&portrait)

	packages := []struct {
		pkg    domain.Package
		prices []domain.PackagePrice
	}{
		{
			pkg: domain.Package{ServiceID: wedding.ID, Name: "Wedding Classic", Description: "8 hours, two photographers", Active: true},
			prices: []domain.PackagePrice{
				{Country: domain.CountryKZ, Amount: 250000, Currency: "KZT"},
				{Country: domain.CountryAE, Amount: 3500, Currency: "AED"},
			},
		},
		{
			pkg: domain.Package{ServiceID: wedding.ID, Name: "Wedding Mini", Description: "3 hours, one photographer", Active: true},
			prices: []domain.PackagePrice{
				{Country: domain.CountryKZ, Amount: 100000, Currency: "KZT"},
				{Country: domain.CountryAE, Amount: 1500, Currency: "AED"},
			},
		},
		{
			pkg: domain.Package{ServiceID: portrait.ID, Name: "Portrait Session", Description: "1 hour in studio", Active: true},
			prices: []domain.PackagePrice{
				{Country: domain.CountryKZ, Amount: 30000, Currency: "KZT"},
				{Country: domain.CountryAE, Amount: 450, Currency: "AED"},
			},
		},
	}
	for i := range packages {
		db.Create(&packages[i].pkg)
		for j := range packages[i].prices {
			packages[i].prices[j].PackageID = packages[i].pkg.ID
			db.Create(&packages[i].prices[j])
		}
	}

	addOns := []struct {
		addOn  domain.AddOn
		prices []domain.AddOnPrice
	}{
		{
			addOn: domain.AddOn{ServiceID: wedding.ID, Name: "Extra hour", Active: true},
			prices: []domain.AddOnPrice{
				{Country: domain.CountryKZ, Amount: 20000, Currency: "KZT"},
				{Country: domain.CountryAE, Amount: 300, Currency: "AED"},
			},
		},
		{
			addOn: domain.AddOn{ServiceID: wedding.ID, Name: "Photo album", Active: true},
			prices: []domain.AddOnPrice{
				{Country: domain.CountryKZ, Amount: 35000, Currency: "KZT"},
				{Country: domain.CountryAE, Amount: 500, Currency: "AED"},
			},
		},
		{
			addOn: domain.AddOn{ServiceID: portrait.ID, Name: "Makeup artist", Active: true},
			prices: []domain.AddOnPrice{
				{Country: domain.CountryKZ, Amount: 15000, Currency: "KZT"},
				{Country: domain.CountryAE, Amount: 250, Currency: "AED"},
			},
		},
	}
	for i := range addOns {
		db.Create(&addOns[i].addOn)
		for j := range addOns[i].prices {
			addOns[i].prices[j].AddOnID = addOns[i].addOn.ID
			db.Create(&addOns[i].prices[j])
		}
	}

	log.Println("Seed completed")
}
