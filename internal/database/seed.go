package database

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pixelperfect/internal/auth"
	"pixelperfect/internal/config"
)

// Seed inserts the fixture content the public site ships with. Each table is
// seeded only when it is empty, so running the step twice never duplicates
// rows. The admin user is created only when seed credentials are configured;
// its password is always stored as a bcrypt hash.
func Seed(db *gorm.DB, cfg config.SeedConfig) error {
	if err := seedAdmin(db, cfg); err != nil {
		return err
	}
	if err := seedProjects(db); err != nil {
		return err
	}
	if err := seedServices(db); err != nil {
		return err
	}
	if err := seedJobOpenings(db); err != nil {
		return err
	}
	return seedBlogArticles(db)
}

func seedAdmin(db *gorm.DB, cfg config.SeedConfig) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return fmt.Errorf("count admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := User{Username: cfg.AdminUsername, PasswordHash: hashed, IsAdmin: true}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

func seedProjects(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Project{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count projects: %w", err)
	}
	if count > 0 {
		return nil
	}

	projects := []Project{
		{
			Title:       "Modern E-commerce Platform",
			Description: "A complete digital shopping experience for a fashion brand",
			Category:    "Web Design",
			Client:      "Fashion Brand",
			ImageURL:    "https://images.unsplash.com/photo-1558655146-d09347e92766?w=600&auto=format&fit=crop",
			Featured:    true,
		},
		{
			Title:       "NextGen Banking App",
			Description: "Intuitive mobile banking experience with advanced security",
			Category:    "Mobile Apps",
			Client:      "Financial Services",
			ImageURL:    "https://images.unsplash.com/photo-1551650975-87deedd944c3?w=600&auto=format&fit=crop",
			Featured:    true,
		},
		{
			Title:       "Evergreen Rebranding",
			Description: "Complete brand refresh for an established sustainability company",
			Category:    "Brand Identity",
			Client:      "Eco Solutions",
			ImageURL:    "https://images.unsplash.com/photo-1559028012-481c04fa702d?w=600&auto=format&fit=crop",
			Featured:    true,
		},
		{
			Title:       "Analytics Dashboard",
			Description: "Data visualization platform for marketing professionals",
			Category:    "Web Design",
			Client:      "Marketing Agency",
			ImageURL:    "https://images.unsplash.com/photo-1559028006-448665bd7c7b?w=600&auto=format&fit=crop",
		},
		{
			Title:       "Fitness Tracking App",
			Description: "Comprehensive fitness solution with social features",
			Category:    "Mobile Apps",
			Client:      "Health Tech",
			ImageURL:    "https://images.unsplash.com/photo-1553484771-047a44eee27a?w=600&auto=format&fit=crop",
		},
		{
			Title:       "Culinary Brand Identity",
			Description: "Fresh identity for an upscale restaurant chain",
			Category:    "Brand Identity",
			Client:      "Restaurant Group",
			ImageURL:    "https://images.unsplash.com/photo-1569017388730-020b5f80a004?w=600&auto=format&fit=crop",
		},
	}
	if err := db.Create(&projects).Error; err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}
	return nil
}

func seedServices(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Service{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if count > 0 {
		return nil
	}

	services := []Service{
		{
			Title:       "Web Development",
			Description: "Custom websites and web applications built with cutting-edge technologies to deliver exceptional user experiences.",
			Icon:        "laptop-code",
			Features:    datatypes.NewJSONSlice([]string{"Responsive design", "CMS integration", "E-commerce solutions"}),
		},
		{
			Title:       "Mobile App Development",
			Description: "Native and cross-platform mobile applications that provide seamless experiences across all devices.",
			Icon:        "mobile-alt",
			Features:    datatypes.NewJSONSlice([]string{"iOS & Android apps", "React Native & Flutter", "App maintenance & updates"}),
		},
		{
			Title:       "UI/UX Design",
			Description: "User-centered design solutions that create intuitive, engaging, and memorable digital experiences.",
			Icon:        "paint-brush",
			Features:    datatypes.NewJSONSlice([]string{"User research", "Wireframing & prototyping", "Design systems"}),
		},
		{
			Title:       "Digital Marketing",
			Description: "Strategic marketing campaigns that increase visibility, drive traffic, and generate leads for your business.",
			Icon:        "bullhorn",
			Features:    datatypes.NewJSONSlice([]string{"SEO & content strategy", "Social media marketing", "PPC & display advertising"}),
		},
		{
			Title:       "Brand Identity",
			Description: "Comprehensive branding solutions that help you establish a strong and distinctive market presence.",
			Icon:        "layer-group",
			Features:    datatypes.NewJSONSlice([]string{"Logo & visual identity", "Brand guidelines", "Brand messaging"}),
		},
		{
			Title:       "Analytics & Optimization",
			Description: "Data-driven insights and optimization strategies to improve performance and ROI of your digital assets.",
			Icon:        "chart-line",
			Features:    datatypes.NewJSONSlice([]string{"Performance analysis", "Conversion rate optimization", "A/B testing"}),
		},
	}
	if err := db.Create(&services).Error; err != nil {
		return fmt.Errorf("seed services: %w", err)
	}
	return nil
}

func seedJobOpenings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&JobOpening{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count job openings: %w", err)
	}
	if count > 0 {
		return nil
	}

	openings := []JobOpening{
		{
			Title:       "Senior UI/UX Designer",
			Location:    "Remote",
			Type:        "Full-time",
			Salary:      "Competitive",
			Description: "Create exceptional user experiences for web and mobile applications. Work closely with development teams to bring designs to life.",
			Active:      true,
		},
		{
			Title:       "Full-Stack Developer",
			Location:    "New York",
			Type:        "Full-time",
			Salary:      "Competitive",
			Description: "Develop modern web applications using JavaScript frameworks. Experience with React, Node.js, and databases required.",
			Active:      true,
		},
		{
			Title:       "Digital Marketing Specialist",
			Location:    "Hybrid",
			Type:        "Full-time",
			Salary:      "Competitive",
			Description: "Develop and implement digital marketing strategies for our clients. Experience with SEO, PPC, and content marketing required.",
			Active:      true,
		},
	}
	if err := db.Create(&openings).Error; err != nil {
		return fmt.Errorf("seed job openings: %w", err)
	}
	return nil
}

func seedBlogArticles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&BlogArticle{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count blog articles: %w", err)
	}
	if count > 0 {
		return nil
	}

	articles := []BlogArticle{
		{
			Title:          "10 UX Design Trends to Watch in 2023",
			Content:        "<p>The world of UX design is constantly evolving, with new trends and technologies emerging all the time. In this article, we'll explore the top 10 UX design trends that are shaping the digital landscape in 2023.</p><h2>1. Dark Mode</h2><p>Dark mode reduces eye strain and saves battery life while creating a sleek, modern look for digital products.</p><h2>2. Voice User Interface</h2><p>Designing for voice requires a different approach than traditional visual interfaces, focusing on conversation flows and natural language.</p><h2>3. Microinteractions</h2><p>Small animations and feedback mechanisms provide visual cues and make interfaces more engaging.</p>",
			Excerpt:        "Explore the latest UX design trends that are shaping the digital landscape and how you can implement them in your projects.",
			Category:       "Design",
			ImageURL:       "https://images.unsplash.com/photo-1515378791036-0648a3ef77b2?w=600&auto=format&fit=crop",
			AuthorName:     "Sarah Johnson",
			AuthorImageURL: "https://randomuser.me/api/portraits/women/44.jpg",
			Published:      true,
		},
		{
			Title:          "Building Performance-First Web Applications",
			Content:        "<p>Users expect websites to load quickly and respond immediately to their interactions. In this article, we explore strategies for building performance-first web applications.</p><h2>Understanding Web Performance</h2><p>Performance starts with measurement: Core Web Vitals give you a shared vocabulary for loading, interactivity, and visual stability.</p><h2>Optimizing the Critical Path</h2><p>Ship less JavaScript, defer what you can, and let the browser paint as early as possible.</p>",
			Excerpt:        "Learn practical strategies for building web applications that load fast and stay fast as they grow.",
			Category:       "Development",
			ImageURL:       "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=600&auto=format&fit=crop",
			AuthorName:     "Michael Chen",
			AuthorImageURL: "https://randomuser.me/api/portraits/men/32.jpg",
			Published:      true,
		},
		{
			Title:          "The Psychology of Color in Branding",
			Content:        "<p>Color is one of the most powerful tools in a brand designer's toolkit. The right palette communicates personality before a single word is read.</p><h2>Color and Emotion</h2><p>Blues convey trust and stability, reds urgency and passion, greens growth and sustainability. Context and culture shape these associations.</p><h2>Building a Palette</h2><p>Start from the brand's core attribute, pick a dominant hue, then build supporting and accent colors around it.</p>",
			Excerpt:        "How strategic color choices shape brand perception and drive customer behavior.",
			Category:       "Branding",
			ImageURL:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=600&auto=format&fit=crop",
			AuthorName:     "Emma Rodriguez",
			AuthorImageURL: "https://randomuser.me/api/portraits/women/68.jpg",
			Published:      true,
		},
	}
	if err := db.Create(&articles).Error; err != nil {
		return fmt.Errorf("seed blog articles: %w", err)
	}
	return nil
}
