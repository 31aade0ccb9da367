package models

// All lists every model for AutoMigrate, parents before children.
func All() []interface{} {
	return []interface{}{
		&User{},
		&ProductType{},
		&Product{},
		&Blog{},
		&Gallery{},
		&HeroSection{},
		&HeroButton{},
		&HeroStat{},
		&Partner{},
		&PartnerSection{},
		&Media{},
		&Settings{},
		&VisitorStat{},
		&SocialMedia{},
	}
}
