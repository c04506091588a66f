package catalog

// Seed is the catalog a fresh MemStore or an empty database starts with.
func Seed() []Product {
	return []Product{
		{
			ID:          1,
			Title:       "Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops",
			Description: "Your perfect pack for everyday use and walks in the forest. Stash your laptop (up to 15 inches) in the padded sleeve.",
			Price:       109.95,
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Rating:      Rating{Rate: 3.9, Count: 120},
		},
		{
			ID:          2,
			Title:       "Mens Casual Premium Slim Fit T-Shirts",
			Description: "Slim-fitting style, contrast raglan long sleeve, three-button henley placket.",
			Price:       22.3,
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
			Rating:      Rating{Rate: 4.1, Count: 259},
		},
		{
			ID:          3,
			Title:       "Mens Cotton Jacket",
			Description: "Great outerwear jackets for Spring/Autumn/Winter, suitable for many occasions.",
			Price:       55.99,
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/71li-ujtlUL._AC_UX679_.jpg",
			Rating:      Rating{Rate: 4.7, Count: 500},
		},
		{
			ID:          5,
			Title:       "John Hardy Women's Legends Naga Gold & Silver Dragon Station Chain Bracelet",
			Description: "From our Legends Collection, the Naga was inspired by the mythical water dragon that protects the ocean's pearl.",
			Price:       695,
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg",
			Rating:      Rating{Rate: 4.6, Count: 400},
		},
		{
			ID:          6,
			Title:       "Solid Gold Petite Micropave",
			Description: "Satisfaction Guaranteed. Return or exchange any order within 30 days.",
			Price:       168,
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/61sbMiUnoGL._AC_UL640_QL65_ML3_.jpg",
			Rating:      Rating{Rate: 3.9, Count: 70},
		},
		{
			ID:          9,
			Title:       "WD 2TB Elements Portable External Hard Drive - USB 3.0",
			Description: "USB 3.0 and USB 2.0 compatibility, fast data transfers, improve PC performance.",
			Price:       64,
			Category:    "electronics",
			Image:       "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg",
			Rating:      Rating{Rate: 3.3, Count: 203},
		},
		{
			ID:          10,
			Title:       "SanDisk SSD PLUS 1TB Internal SSD - SATA III 6 Gb/s",
			Description: "Easy upgrade for faster boot up, shutdown, application load and response.",
			Price:       109,
			Category:    "electronics",
			Image:       "https://fakestoreapi.com/img/61U7T1koQqL._AC_SX679_.jpg",
			Rating:      Rating{Rate: 2.9, Count: 470},
		},
		{
			ID:          18,
			Title:       "MBJ Women's Solid Short Sleeve Boat Neck V",
			Description: "95% rayon, 5% spandex. Made in USA or imported.",
			Price:       9.85,
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/71z3kpMAYsL._AC_UY879_.jpg",
			Rating:      Rating{Rate: 4.7, Count: 130},
		},
		{
			ID:          20,
			Title:       "DANVOUY Womens T Shirt Casual Cotton Short",
			Description: "95% cotton, 5% spandex. Features: casual, short sleeve, letter print, V-neck.",
			Price:       12.99,
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/61pHAEJ4NML._AC_UX679_.jpg",
			Rating:      Rating{Rate: 3.6, Count: 145},
		},
	}
}
