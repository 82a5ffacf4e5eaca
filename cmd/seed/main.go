// Command seed creates the groups (and, with -demo, a set of demo users
// and posts). Groups are only ever created here: the public API treats
// them as read-only.
package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"github.com/devzera/bear-blog/internal/database"
	"github.com/devzera/bear-blog/internal/models"
)

func main() {
	demo := flag.Bool("demo", false, "also create demo users and posts")
	flag.Parse()

	db := database.New()
	defer db.Close()
	gormDB := db.GetDB()

	groups := []models.Group{
		{Title: "Sport", Slug: "sport", Description: "Match reports and hot takes"},
		{Title: "Travel", Slug: "travel", Description: "Trip notes and photo dumps"},
		{Title: "Tech", Slug: "tech", Description: "Software, hardware and everything between"},
	}
	for _, g := range groups {
		err := gormDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&g).Error
		if err != nil {
			log.Fatalf("Failed to seed group %q: %v", g.Slug, err)
		}
	}
	log.Printf("Seeded %d groups", len(groups))

	if !*demo {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	users := []models.User{
		{Username: "dev", Email: "dev@example.com", Password: string(hash)},
		{Username: "arm", Email: "arm@example.com", Password: string(hash)},
		{Username: "mike", Email: "mike@example.com", Password: string(hash)},
	}
	for i := range users {
		err := gormDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&users[i]).Error
		if err != nil {
			log.Fatalf("Failed to seed user %q: %v", users[i].Username, err)
		}
	}

	var dev models.User
	if err := gormDB.Where("username = ?", "dev").First(&dev).Error; err != nil {
		log.Fatalf("Failed to load demo author: %v", err)
	}
	var sport models.Group
	if err := gormDB.Where("slug = ?", "sport").First(&sport).Error; err != nil {
		log.Fatalf("Failed to load demo group: %v", err)
	}

	for i := 1; i <= 15; i++ {
		post := models.Post{
			Text:     fmt.Sprintf("Demo post %d", i),
			AuthorID: dev.ID,
			GroupID:  &sport.ID,
		}
		if err := gormDB.Create(&post).Error; err != nil {
			log.Fatalf("Failed to seed post %d: %v", i, err)
		}
	}
	log.Println("Seeded demo users and posts")
}
