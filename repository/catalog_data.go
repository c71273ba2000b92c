package repository

import "luxeStore/models"

var sampleProducts = []models.Product{
	{
		Id:          "1",
		Name:        "Italian Linen Blazer",
		Price:       3499,
		Image:       "https://images.unsplash.com/photo-1594938298603-c8148c4dae35?w=400&h=500&fit=crop",
		Category:    models.CategoryMen,
		Description: "Premium Italian linen blazer with a tailored fit. Perfect for summer events and casual business meetings.",
		Rating:      4.8,
		Reviews:     124,
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"Beige", "Navy", "Black"},
	},
	{
		Id:          "2",
		Name:        "Silk Midi Dress",
		Price:       2899,
		Image:       "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=400&h=500&fit=crop",
		Category:    models.CategoryWomen,
		Description: "Elegant silk midi dress with a flattering silhouette. Features a subtle floral pattern and adjustable straps.",
		Rating:      4.9,
		Reviews:     89,
		Sizes:       []string{"XS", "S", "M", "L"},
		Colors:      []string{"Ivory", "Rose", "Emerald"},
	},
	{
		Id:          "3",
		Name:        "Cashmere Sweater",
		Price:       4299,
		Image:       "https://images.unsplash.com/photo-1576995853123-5a10305d93c0?w=400&h=500&fit=crop",
		Category:    models.CategoryMen,
		Description: "Ultra-soft cashmere sweater with ribbed cuffs and hem. Provides exceptional warmth without the bulk.",
		Rating:      4.7,
		Reviews:     156,
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Colors:      []string{"Charcoal", "Camel", "Burgundy"},
	},
	{
		Id:          "4",
		Name:        "Leather Handbag",
		Price:       5999,
		Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=500&fit=crop",
		Category:    models.CategoryAccessories,
		Description: "Handcrafted leather handbag with gold-tone hardware. Features multiple compartments and a detachable shoulder strap.",
		Rating:      4.9,
		Reviews:     203,
		Colors:      []string{"Tan", "Black", "Brown"},
	},
	{
		Id:          "5",
		Name:        "Cotton Oxford Shirt",
		Price:       1899,
		Image:       "https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf?w=400&h=500&fit=crop",
		Category:    models.CategoryMen,
		Description: "Classic Oxford shirt made from premium cotton. Features a button-down collar and a relaxed fit.",
		Rating:      4.6,
		Reviews:     178,
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"White", "Blue", "Pink"},
	},
	{
		Id:          "6",
		Name:        "Pleated Maxi Skirt",
		Price:       2499,
		Image:       "https://plus.unsplash.com/premium_photo-1671379102281-7225f3d3d97d?q=80&w=1974&auto=format&fit=crop",
		Category:    models.CategoryWomen,
		Description: "Elegant pleated maxi skirt with a comfortable elastic waistband. Perfect for both casual and formal occasions.",
		Rating:      4.7,
		Reviews:     92,
		Sizes:       []string{"XS", "S", "M", "L"},
		Colors:      []string{"Black", "Navy", "Cream"},
	},
	{
		Id:          "7",
		Name:        "Kids Denim Jacket",
		Price:       1299,
		Image:       "https://images.unsplash.com/photo-1551698618-1dfe5d97d256?w=400&h=500&fit=crop",
		Category:    models.CategoryKids,
		Description: "Durable denim jacket for kids with soft cotton lining. Features adjustable cuffs and multiple pockets.",
		Rating:      4.8,
		Reviews:     65,
		Sizes:       []string{"3-4Y", "5-6Y", "7-8Y", "9-10Y"},
		Colors:      []string{"Blue", "Light Wash"},
	},
	{
		Id:          "8",
		Name:        "Leather Wallet",
		Price:       1499,
		Image:       "https://images.unsplash.com/photo-1627123424574-724758594e93?w=400&h=500&fit=crop",
		Category:    models.CategoryAccessories,
		Description: "Slim leather wallet with RFID protection. Features multiple card slots and a bill compartment.",
		Rating:      4.9,
		Reviews:     211,
		Colors:      []string{"Black", "Brown", "Tan"},
	},
	{
		Id:          "9",
		Name:        "Wool Blend Coat",
		Price:       6999,
		Image:       "https://images.unsplash.com/photo-1544966503-7cc5ac882d5f?w=400&h=500&fit=crop",
		Category:    models.CategoryWomen,
		Description: "Luxurious wool blend coat with a tailored fit. Features a notched collar and a double-breasted front.",
		Rating:      4.8,
		Reviews:     87,
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Colors:      []string{"Camel", "Black", "Grey"},
	},
	{
		Id:          "10",
		Name:        "Kids Cotton T-Shirt",
		Price:       699,
		Image:       "https://images.unsplash.com/photo-1503944583220-79d8926ad5e2?w=400&h=500&fit=crop",
		Category:    models.CategoryKids,
		Description: "Soft cotton t-shirt for kids with a playful graphic print. Features a comfortable crew neck and short sleeves.",
		Rating:      4.7,
		Reviews:     103,
		Sizes:       []string{"3-4Y", "5-6Y", "7-8Y", "9-10Y"},
		Colors:      []string{"White", "Blue", "Yellow"},
	},
	{
		Id:          "11",
		Name:        "Silk Scarf",
		Price:       1299,
		Image:       "https://images.unsplash.com/photo-1601924994987-69e26d50dc26?w=400&h=500&fit=crop",
		Category:    models.CategoryAccessories,
		Description: "Luxurious silk scarf with a vibrant print. Perfect for adding a pop of color to any outfit.",
		Rating:      4.8,
		Reviews:     76,
		Colors:      []string{"Multicolor", "Blue", "Red"},
	},
	{
		Id:          "12",
		Name:        "Slim Fit Chinos",
		Price:       1999,
		Image:       "https://images.unsplash.com/photo-1473966968600-fa801b869a1a?w=400&h=500&fit=crop",
		Category:    models.CategoryMen,
		Description: "Versatile slim fit chinos made from stretch cotton. Features a comfortable waistband and a clean finish.",
		Rating:      4.6,
		Reviews:     142,
		Sizes:       []string{"28", "30", "32", "34", "36"},
		Colors:      []string{"Khaki", "Navy", "Olive"},
	},
}

var sampleCategories = []models.CategoryInfo{
	{Name: "Men", Slug: models.CategoryMen, Image: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=600&fit=crop"},
	{Name: "Women", Slug: models.CategoryWomen, Image: "https://images.unsplash.com/photo-1515372039744-b8f02a3ae446?w=400&h=600&fit=crop"},
	{Name: "Kids", Slug: models.CategoryKids, Image: "https://images.unsplash.com/photo-1503944583220-79d8926ad5e2?w=400&h=600&fit=crop"},
	{Name: "Accessories", Slug: models.CategoryAccessories, Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=600&fit=crop"},
}

// SampleProducts returns a copy of the built-in catalog in its natural order.
func SampleProducts() []models.Product {
	out := make([]models.Product, len(sampleProducts))
	copy(out, sampleProducts)
	return out
}
