package main

import (
	"strings"

	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "artisan123"

type seedProduct struct {
	title       string
	description string
	price       float64
	category    string
	stock       int
	featured    bool
	tags        []string
	materials   []string
	image       string
}

var demoProducts = []seedProduct{
	{
		title:       "Crochet Sunflower Coaster Set",
		description: "Set of four cotton coasters hooked by hand in bright sunflower yellow.",
		price:       349,
		category:    constants.CategoryCrochetArts,
		stock:       25,
		featured:    true,
		tags:        []string{"coaster", "kitchen", "gift"},
		materials:   []string{"cotton yarn"},
		image:       "https://images.unsplash.com/photo-1615485290382-441e4d049cb5?w=800",
	},
	{
		title:       "Wooden Pull-Along Elephant",
		description: "Sanded teak toy on wheels, finished with child-safe beeswax.",
		price:       899,
		category:    constants.CategoryHandmadeToys,
		stock:       8,
		featured:    true,
		tags:        []string{"toy", "wood", "kids"},
		materials:   []string{"teak", "beeswax"},
		image:       "https://images.unsplash.com/photo-1596461404969-9ae70f2830c1?w=800",
	},
	{
		title:       "Terracotta Hanging Planter",
		description: "Wheel-thrown terracotta planter with jute hanger for small succulents.",
		price:       540,
		category:    constants.CategoryHandmadeDecors,
		stock:       4,
		tags:        []string{"planter", "terracotta"},
		materials:   []string{"terracotta", "jute"},
		image:       "https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=800",
	},
	{
		title:       "Block-Printed Cotton Kurta Dress",
		description: "Hand block-printed indigo dress cut from breathable mulmul cotton.",
		price:       1850,
		category:    constants.CategoryDresses,
		stock:       12,
		tags:        []string{"dress", "indigo", "block print"},
		materials:   []string{"cotton"},
		image:       "https://images.unsplash.com/photo-1583391733956-6c78276477e2?w=800",
	},
	{
		title:       "Monsoon Abstract on Canvas",
		description: "Acrylic abstract in deep blues and greens, stretched and ready to hang.",
		price:       4200,
		category:    constants.CategoryAbstractArts,
		stock:       1,
		featured:    true,
		tags:        []string{"abstract", "canvas"},
		materials:   []string{"acrylic", "canvas"},
		image:       "https://images.unsplash.com/photo-1541961017774-22349e4a1262?w=800",
	},
	{
		title:       "Madhubani Peacock Painting",
		description: "Traditional Madhubani peacock painted with natural pigments on handmade paper.",
		price:       2600,
		category:    constants.CategoryPaintings,
		stock:       3,
		tags:        []string{"madhubani", "folk art"},
		materials:   []string{"natural pigment", "handmade paper"},
		image:       "https://images.unsplash.com/photo-1578301978693-85fa9c0320b9?w=800",
	},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.Connect(cfg.Database, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		stdLog.Printf("Failed to create admin: %v", err)
	}

	artisan, err := ensureUser("Kavya Potter", "artisan@artisanhub.local", constants.RoleArtisan)
	if err != nil {
		stdLog.Fatalf("Failed to create demo artisan: %v", err)
	}
	if _, err := ensureUser("Rohan Buyer", "customer@artisanhub.local", constants.RoleCustomer); err != nil {
		stdLog.Fatalf("Failed to create demo customer: %v", err)
	}

	for _, item := range demoProducts {
		var count int64
		if err := models.DB.Model(&models.Product{}).Where("title = ?", item.title).Count(&count).Error; err != nil {
			stdLog.Printf("Failed to check product %s: %v", item.title, err)
			continue
		}
		if count > 0 {
			stdLog.Printf("Product already exists: %s", item.title)
			continue
		}
		price := models.NewMoneyFromFloat(item.price)
		stock := item.stock
		featured := item.featured
		product, err := models.NewProduct(artisan.ID, models.ProductInput{
			Title:       item.title,
			Description: item.description,
			Price:       &price,
			Category:    item.category,
			Images:      []string{item.image},
			Stock:       &stock,
			IsFeatured:  &featured,
			Tags:        item.tags,
			Materials:   item.materials,
		})
		if err != nil {
			stdLog.Printf("Invalid demo product %s: %v", item.title, err)
			continue
		}
		if err := models.DB.Create(product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.title, err)
			continue
		}
		stdLog.Printf("Created product: %s", item.title)
	}

	stdLog.Printf("Seed finished. Demo accounts use password %q", demoPassword)
}

func ensureUser(name, email, role string) (*models.User, error) {
	var existing models.User
	result := models.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&existing)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		return &existing, nil
	}
	user, err := models.NewUser(name, email, role)
	if err != nil {
		return nil, err
	}
	if role == constants.RoleArtisan {
		user.ArtisanProfile = models.ArtisanProfile{
			Bio:             "Studio potter and maker working out of Jaipur.",
			Specialties:     models.StringArray{"pottery", "crochet"},
			ExperienceYears: 9,
			Location:        "Jaipur",
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	if err := models.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
