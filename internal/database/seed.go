package database

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"homequest/server/internal/models"
)

// demoPassword is shared by the seeded demo accounts. Local development only.
const demoPassword = "password123"

type seedUser struct {
	name  string
	email string
	role  string
}

var seedUsers = []seedUser{
	{"Admin User", "admin@homequest.dev", models.RoleAdmin},
	{"Agent Sharma", "agent@homequest.dev", models.RoleAgent},
	{"Demo Buyer", "buyer@homequest.dev", models.RoleUser},
}

type seedCity struct {
	name      string
	basePrice int
}

var seedCities = []seedCity{
	{"Mumbai", 18000},
	{"Delhi", 15000},
	{"Bangalore", 12000},
	{"Pune", 10000},
	{"Hyderabad", 9000},
	{"Chennai", 8500},
	{"Gurgaon", 16000},
	{"Noida", 11000},
	{"Kolkata", 6500},
	{"Ahmedabad", 7000},
}

var localityPrefixes = []string{
	"South", "North", "East", "West", "Central",
	"New", "Old", "Greater", "Near", "Around",
}

var localitySuffixes = []string{
	"Park", "View", "Garden", "Colony", "Heights",
	"Enclave", "Nagar", "Vihar", "Extension",
	"Sector", "Lane", "Street", "Avenue", "Plaza",
}

var societyPrefixes = []string{
	"Royal", "Grand", "Divine", "Luxury", "Premier",
	"Elite", "Sky", "Green", "Silver", "Golden",
	"Pearl", "Emerald", "Sapphire", "Diamond", "Platinum",
}

var societySuffixes = []string{
	"Heights", "Towers", "Manor", "Palace", "Residency",
	"Apartments", "Villas", "Enclave", "Plaza", "Gardens",
}

var trendComments = []string{
	"High demand",
	"Stable market",
	"Growing IT hub",
	"Affordable",
	"Upcoming infrastructure",
	"Excellent connectivity",
	"Rapid development",
	"Investment hotspot",
	"Family-friendly",
	"Commercial hub",
}

func randomBetween(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}

func randomFloatBetween(rng *rand.Rand, min, max float64) float64 {
	v := rng.Float64()*(max-min) + min
	// two decimal places, like the displayed growth figures
	return float64(int(v*100)) / 100
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

// historicSeries builds a society's four-year price series from its current
// price. Written once at seed time; insight edits never recompute it.
func historicSeries(basePrice int) []models.YearPrice {
	return []models.YearPrice{
		{Year: 2021, Price: basePrice * 75 / 100},
		{Year: 2022, Price: basePrice * 85 / 100},
		{Year: 2023, Price: basePrice * 95 / 100},
		{Year: 2024, Price: basePrice},
	}
}

// Seed populates insight tables and demo users on an empty database. It is
// a no-op when city insights already exist.
func (d *Database) Seed(logger *logrus.Logger) error {
	var count int64
	if err := d.db.Model(&models.CityInsight{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Database already seeded, skipping")
		return nil
	}

	rng := rand.New(rand.NewSource(42))

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range seedUsers {
			var existing models.User
			if err := tx.Where("email = ?", u.email).First(&existing).Error; err == nil {
				continue
			}
			user := models.User{Name: u.name, Email: u.email, Password: string(hashed), Role: u.role}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		}

		for _, city := range seedCities {
			cityInsight := models.CityInsight{
				City:          city.name,
				AvgPriceSqFt:  float64(randomBetween(rng, city.basePrice*80/100, city.basePrice*120/100)),
				OneYearGrowth: randomFloatBetween(rng, -3.0, 12.0),
				DemandIndex:   float64(randomBetween(rng, 50, 100)),
			}
			if err := tx.Create(&cityInsight).Error; err != nil {
				return err
			}

			usedLocalities := map[string]bool{}
			localityCount := randomBetween(rng, 3, 5)
			for i := 0; i < localityCount; i++ {
				name := pick(rng, localityPrefixes) + " " + pick(rng, localitySuffixes)
				if usedLocalities[name] {
					name = fmt.Sprintf("%s %d", name, i+1)
				}
				usedLocalities[name] = true

				locality := models.LocalityInsight{
					City:          city.name,
					Locality:      name,
					AvgPriceSqFt:  float64(randomBetween(rng, city.basePrice*70/100, city.basePrice*130/100)),
					OneYearGrowth: randomFloatBetween(rng, -2.0, 15.0),
					TrendComment:  pick(rng, trendComments),
				}
				if err := tx.Create(&locality).Error; err != nil {
					return err
				}

				usedSocieties := map[string]bool{}
				societyCount := randomBetween(rng, 2, 3)
				for j := 0; j < societyCount; j++ {
					societyName := pick(rng, societyPrefixes) + " " + pick(rng, societySuffixes)
					if usedSocieties[societyName] {
						societyName = fmt.Sprintf("%s Society %d", name, j+1)
					}
					usedSocieties[societyName] = true

					price := randomBetween(rng, city.basePrice*70/100, city.basePrice*140/100)
					society := models.SocietyInsight{
						City:          city.name,
						Locality:      name,
						Society:       societyName,
						AvgPriceSqFt:  float64(price),
						OneYearGrowth: randomFloatBetween(rng, -1.0, 18.0),
						HistoricData:  historicSeries(price),
					}
					if err := tx.Create(&society).Error; err != nil {
						return err
					}
				}
			}
		}

		logger.Info("Seeded insight data and demo users")
		return nil
	})
}
