package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndamdavid/servicelink_backend/internal/models"
)

var defaultCategories = []models.ServiceCategory{
	{
		FrName:        "Technologie & Informatique",
		FrDescription: "Développement de logiciels, Cybersécurité, Science des données, Support informatique, Conception UX/UI",
		EnName:        "Technology & IT",
		EnDescription: "Software Development, Cybersecurity, Data Science, IT Support, UX/UI Design",
	},
	{
		FrName:        "Ingénierie & Architecture",
		FrDescription: "Ingénierie mécanique, civile et électrique, Design industriel, Architecture",
		EnName:        "Engineering & Architecture",
		EnDescription: "Mechanical, Civil and Electrical Engineering, Industrial Design, Architecture",
	},
	{
		FrName:        "Affaires & Finance",
		FrDescription: "Comptabilité, Analyse financière, Consulting en management, Ressources humaines, Gestion de projet",
		EnName:        "Business & Finance",
		EnDescription: "Accounting, Financial Analysis, Management Consulting, Human Resources, Project Management",
	},
	{
		FrName:        "Ventes & Marketing",
		FrDescription: "Marketing digital, SEO & SEM, Gestion des réseaux sociaux, Gestion de marque, Publicité",
		EnName:        "Sales & Marketing",
		EnDescription: "Digital Marketing, SEO & SEM, Social Media Management, Brand Management, Advertising",
	},
	{
		FrName:        "Santé & Médical",
		FrDescription: "Soins infirmiers, Pharmacie, Physiothérapie, Santé mentale, Dentisterie",
		EnName:        "Healthcare & Medical",
		EnDescription: "Nursing, Pharmacy, Physical Therapy, Mental Health, Dentistry",
	},
	{
		FrName:        "Artisanat & Services à domicile",
		FrDescription: "Plomberie, Électricité, Menuiserie, Ménage, Jardinage, Petites réparations",
		EnName:        "Crafts & Home Services",
		EnDescription: "Plumbing, Electrical Work, Carpentry, Cleaning, Gardening, Small Repairs",
	},
}

// SeedCategories inserts the default bilingual catalog. Idempotent: reruns
// and concurrent boots hit the fr_name unique index and insert nothing.
func SeedCategories(gdb *gorm.DB) error {
	for i := range defaultCategories {
		c := defaultCategories[i]
		if err := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
