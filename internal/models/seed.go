package models

import (
	"time"

	"github.com/taazabazaar/internal/constants"

	"github.com/shopspring/decimal"
)

const seedImageQuery = "?auto=compress&cs=tinysrgb&w=400"

type seedProductRow struct {
	id       string
	name     string
	category string
	price    int64
	stock    int64
	image    string
}

var seedProductRows = []seedProductRow{
	{"1", "Fresh Tomatoes", constants.CategoryVegetable, 40, 50, "https://images.pexels.com/photos/533280/pexels-photo-533280.jpeg"},
	{"2", "Green Spinach", constants.CategoryVegetable, 25, 30, "https://images.pexels.com/photos/2325843/pexels-photo-2325843.jpeg"},
	{"5", "Fresh Carrots", constants.CategoryVegetable, 35, 35, "https://images.pexels.com/photos/143133/pexels-photo-143133.jpeg"},
	{"6", "Bell Peppers", constants.CategoryVegetable, 80, 20, "https://images.pexels.com/photos/594137/pexels-photo-594137.jpeg"},
	{"7", "Fresh Onions", constants.CategoryVegetable, 30, 45, "https://images.pexels.com/photos/533342/pexels-photo-533342.jpeg"},
	{"8", "Green Cabbage", constants.CategoryVegetable, 25, 25, "https://images.pexels.com/photos/2255935/pexels-photo-2255935.jpeg"},
	{"9", "Fresh Potatoes", constants.CategoryVegetable, 20, 60, "https://images.pexels.com/photos/144248/potatoes-vegetables-erdfrucht-bio-144248.jpeg"},
	{"10", "Green Broccoli", constants.CategoryVegetable, 60, 15, "https://images.pexels.com/photos/47347/broccoli-vegetable-food-healthy-47347.jpeg"},
	{"11", "Fresh Cauliflower", constants.CategoryVegetable, 40, 20, "https://images.pexels.com/photos/1656663/pexels-photo-1656663.jpeg"},
	{"3", "Fresh Apples", constants.CategoryFruit, 120, 25, "https://images.pexels.com/photos/102104/pexels-photo-102104.jpeg"},
	{"4", "Ripe Bananas", constants.CategoryFruit, 60, 40, "https://images.pexels.com/photos/61127/pexels-photo-61127.jpeg"},
	{"12", "Fresh Oranges", constants.CategoryFruit, 80, 30, "https://images.pexels.com/photos/161559/background-bitter-breakfast-bright-161559.jpeg"},
	{"13", "Sweet Mangoes", constants.CategoryFruit, 150, 20, "https://images.pexels.com/photos/918327/pexels-photo-918327.jpeg"},
	{"14", "Fresh Grapes", constants.CategoryFruit, 100, 25, "https://images.pexels.com/photos/23042/pexels-photo.jpg"},
	{"15", "Ripe Strawberries", constants.CategoryFruit, 200, 15, "https://images.pexels.com/photos/89778/strawberries-frisch-ripe-sweet-89778.jpeg"},
	{"16", "Fresh Pineapple", constants.CategoryFruit, 80, 12, "https://images.pexels.com/photos/947879/pexels-photo-947879.jpeg"},
	{"17", "Sweet Watermelon", constants.CategoryFruit, 40, 18, "https://images.pexels.com/photos/1313267/pexels-photo-1313267.jpeg"},
	{"18", "Winter Radish", constants.CategorySeasonal, 35, 25, "https://images.pexels.com/photos/1656666/pexels-photo-1656666.jpeg"},
	{"19", "Fresh Peas", constants.CategorySeasonal, 80, 20, "https://images.pexels.com/photos/1656666/pexels-photo-1656666.jpeg"},
	{"20", "Sweet Corn", constants.CategorySeasonal, 50, 30, "https://images.pexels.com/photos/547263/pexels-photo-547263.jpeg"},
	{"21", "Fresh Ginger", constants.CategoryOthers, 120, 15, "https://images.pexels.com/photos/161556/ginger-plant-asia-rhizome-161556.jpeg"},
	{"22", "Fresh Garlic", constants.CategoryOthers, 200, 20, "https://images.pexels.com/photos/51391/garlic-white-background-bulb-fresh-51391.jpeg"},
	{"23", "Green Chilies", constants.CategoryOthers, 60, 25, "https://images.pexels.com/photos/1437267/pexels-photo-1437267.jpeg"},
}

// SeedProducts 返回固定的种子商品（每次调用返回新副本）
func SeedProducts(now time.Time) []Product {
	products := make([]Product, 0, len(seedProductRows))
	for _, row := range seedProductRows {
		image := row.image + seedImageQuery
		products = append(products, Product{
			ID:        row.id,
			Name:      row.name,
			Type:      row.category,
			Price:     NewMoney(row.price),
			Stock:     NewQuantity(decimal.NewFromInt(row.stock)),
			ImageURL:  &image,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return products
}

// SeedOrders 返回固定的种子订单
func SeedOrders(now time.Time) []Order {
	return []Order{
		{
			ID:        "order_1",
			UserID:    "user_1",
			Location:  "123 Main St, City",
			TotalCost: NewMoney(80),
			Status:    constants.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
			Items: []OrderItem{
				{
					OrderID:     "order_1",
					ProductID:   "1",
					ProductName: "Fresh Tomatoes",
					Quantity:    NewQuantity(decimal.NewFromInt(2)),
					Price:       NewMoney(40),
					Unit:        constants.DefaultUnit,
				},
			},
		},
	}
}
