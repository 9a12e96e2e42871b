package seeder

import (
	"log"

	"gorm.io/gorm"

	"github.com/raobaba/SkillBridge-Pro-sub006/model"
)

// SeedRoles ensures the platform roles exist before the auth service starts
// minting tokens that reference them.
func SeedRoles(db *gorm.DB) {
	roles := []model.Role{
		{
			Name:        "Administrator",
			Code:        string(model.RoleAdmin),
			Description: "Full platform access",
			IsSystem:    true,
		},
		{
			Name:        "Project Owner",
			Code:        string(model.RoleOwner),
			Description: "Owns projects and hires talent",
			IsSystem:    true,
		},
		{
			Name:        "Developer",
			Code:        string(model.RoleDeveloper),
			Description: "Standard talent account",
			IsSystem:    true,
		},
	}

	for _, role := range roles {
		// 'Code' is the stable identifier used in tokens
		if err := db.Where(model.Role{Code: role.Code}).FirstOrCreate(&role).Error; err != nil {
			log.Printf("Error seeding role %s: %v", role.Code, err)
		}
	}

	log.Println("Role seeding completed.")
}
