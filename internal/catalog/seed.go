package catalog

import "time"

// SeedProducts returns the demo catalogue. IDs are left zero so the store
// assigns them.
func SeedProducts() []Product {
	std := []Feature{
		{Title: "Instant Delivery", Desc: "Credentials sent within minutes"},
		{Title: "Warranty", Desc: "Full replacement for the subscription period"},
	}
	return []Product{
		{Name: "Netflix Premium", Category: "OTT", Tags: []string{"Streaming"}, Price: 499, OriginalPrice: 649, Stock: 40, Description: "4K UHD streaming on four screens.", Features: std},
		{Name: "Amazon Prime Video", Category: "OTT", Tags: []string{"Streaming"}, Price: 299, OriginalPrice: 399, Stock: 55, Description: "Prime Video with free delivery benefits.", Features: std},
		{Name: "Spotify Premium", Category: "OTT", Tags: []string{"Music"}, Price: 119, OriginalPrice: 179, Stock: 80, Description: "Ad-free music with offline downloads.", Features: std},
		{Name: "Disney+ Hotstar", Category: "OTT", Tags: []string{"Streaming", "Sports"}, Price: 899, OriginalPrice: 1499, Stock: 25, Description: "Movies, series and live cricket.", Features: std},
		{Name: "YouTube Premium", Category: "OTT", Tags: []string{"Streaming", "Music"}, Price: 129, OriginalPrice: 189, Stock: 60, Description: "Ad-free videos and YouTube Music.", Features: std},
		{Name: "SonyLIV Premium", Category: "OTT", Tags: []string{"Streaming", "Sports"}, Price: 699, Stock: 30, Description: "Live sports and Sony originals.", Features: std},
		{Name: "Apple TV+", Category: "OTT", Tags: []string{"Streaming"}, Price: 199, Stock: 35, Description: "Apple originals in 4K HDR.", Features: std},

		{Name: "IPTV Basic", Category: "IPTV", Tags: []string{"Basic"}, Price: 299, OriginalPrice: 499, Stock: 100, Description: "3000+ live channels in HD."},
		{Name: "IPTV Premium", Category: "IPTV", Tags: []string{"Premium"}, Price: 599, OriginalPrice: 999, Stock: 100, Description: "10000+ channels with catch-up TV."},
		{Name: "IPTV Sports Pack", Category: "IPTV", Tags: []string{"Sports", "Premium"}, Price: 449, Stock: 70, Description: "Every league, every match."},
		{Name: "IPTV World", Category: "IPTV", Tags: []string{"International"}, Price: 799, OriginalPrice: 1199, Stock: 45, Description: "Channels from 40 countries."},

		{Name: "Windows 11 Pro Key", Category: "Keys", Tags: []string{"OS"}, Price: 1299, OriginalPrice: 14999, Stock: 200, Description: "Lifetime retail activation key."},
		{Name: "Office 2021 Professional", Category: "Keys", Tags: []string{"Office"}, Price: 1999, OriginalPrice: 24999, Stock: 150, Description: "Word, Excel, PowerPoint and Outlook."},
		{Name: "Adobe Creative Cloud", Category: "Keys", Tags: []string{"Creative"}, Price: 3499, Stock: 20, Description: "Full suite, one year."},
		{Name: "Kaspersky Total Security", Category: "Keys", Tags: []string{"Security"}, Price: 799, OriginalPrice: 1999, Stock: 90, Description: "Three devices, one year."},

		{Name: "Cyber Racer", Category: "Downloads", Tags: []string{"Games"}, Price: 999, Stock: 0, Description: "Open-world racing."},
		{Name: "Studio Suite", Category: "Downloads", Tags: []string{"Software"}, Price: 1499, Stock: 12, Description: "Audio production toolkit."},
		{Name: "Classic Films Bundle", Category: "Downloads", Tags: []string{"Movies"}, Price: 349, Stock: 75, Description: "Twenty restored classics."},
		{Name: "Lo-fi Collection", Category: "Downloads", Tags: []string{"Music"}, Price: 149, Stock: 200, Description: "Lossless lo-fi albums."},
	}
}

// SeedOrders returns demo orders matching the admin screens.
func SeedOrders() []Order {
	day := func(d int) time.Time { return time.Date(2025, time.July, d, 10, 0, 0, 0, time.UTC) }
	return []Order{
		{ID: 101, Reference: "ORD-101", Customer: "Alice Johnson", Email: "alice@example.com", Status: StatusShipped, Total: 89.99, Date: day(15)},
		{ID: 102, Reference: "ORD-102", Customer: "Bob Williams", Email: "bob@example.com", Status: StatusPending, Total: 29.99, Date: day(16)},
		{ID: 103, Reference: "ORD-103", Customer: "Charlie Brown", Email: "charlie@example.com", Status: StatusDelivered, Total: 59.99, Date: day(12)},
		{ID: 104, Reference: "ORD-104", Customer: "Diana Miller", Email: "diana@example.com", Status: StatusCanceled, Total: 129.50, Date: day(14)},
		{ID: 105, Reference: "ORD-105", Customer: "Ethan Davis", Email: "ethan@example.com", Status: StatusDelivered, Total: 45.00, Date: day(11)},
		{ID: 106, Reference: "ORD-106", Customer: "Alice Johnson", Email: "alice@example.com", Status: StatusPending, Total: 19.99, Date: day(16)},
	}
}

// SeedUsers returns demo accounts.
func SeedUsers() []User {
	joined := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return []User{
		{Name: "Harsh", Email: "harsh@example.com", Role: RoleAdmin, CreatedAt: joined},
		{Name: "Sonal", Email: "sonal@example.com", Role: RoleCustomer, CreatedAt: joined.AddDate(0, 0, 3)},
		{Name: "Jay", Email: "jay@example.com", Role: RoleCustomer, CreatedAt: joined.AddDate(0, 0, 9)},
		{Name: "Priya", Email: "priya@example.com", Role: RoleCustomer, CreatedAt: joined.AddDate(0, 1, 2)},
		{Name: "Alice Johnson", Email: "alice@example.com", Role: RoleCustomer, CreatedAt: joined.AddDate(0, 0, 20)},
	}
}
