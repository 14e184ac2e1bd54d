package board

// Action names referenced by classic action locations.
const (
	ActionPickChance         = "pick_chance_card"
	ActionPickCommunityChest = "pick_community_chest_card"
	ActionGoToJail           = "go_to_jail"
)

var railroadDues = []int{0, 25, 50, 100, 200}

var utilityMultipliers = map[int]int{1: 4, 2: 10}

func street(name, color string, pos, price, rent int, houses []int, hotel, house int) LocationSpec {
	return LocationSpec{
		Name: name, Kind: KindRealEstate, Start: pos, End: pos + 1,
		Price: price, Mortgage: price / 2, Color: color,
		Rent: rent, RentHouses: houses, RentHotel: hotel, PriceHouse: house,
	}
}

func railroad(name string, pos int) LocationSpec {
	return LocationSpec{
		Name: name, Kind: KindRailroad, Start: pos, End: pos + 1,
		Price: 200, Mortgage: 100, Dues: append([]int(nil), railroadDues...),
	}
}

func utility(name string, pos int) LocationSpec {
	multipliers := make(map[int]int, len(utilityMultipliers))
	for k, v := range utilityMultipliers {
		multipliers[k] = v
	}
	return LocationSpec{
		Name: name, Kind: KindUtility, Start: pos, End: pos + 1,
		Price: 150, Mortgage: 75, Multipliers: multipliers,
	}
}

func action(name, act string, pos int) LocationSpec {
	return LocationSpec{Name: name, Kind: KindAction, Start: pos, End: pos + 1, Action: act}
}

func idle(name string, pos int) LocationSpec {
	return LocationSpec{Name: name, Kind: KindDoNothing, Start: pos, End: pos + 1}
}

func tax(name string, pos, amount int) LocationSpec {
	return LocationSpec{Name: name, Kind: KindTax, Start: pos, End: pos + 1, Amount: amount}
}

// Classic returns the standard forty-square board.
func Classic() *Schema {
	return &Schema{
		Name:         "classic",
		StartingCash: 1500,
		GoPosition:   0,
		JailPosition: 10,
		Bank: BankSpec{
			Cash:                   100000,
			Houses:                 32,
			Hotels:                 12,
			MortgagePercentage:     0.1,
			MonopolyMultiplier:     2,
			PropertySellPercentage: 0.5,
			HouseSellPercentage:    0.5,
			MaxHousesPerProperty:   4,
			GoIncrement:            200,
			JailFine:               50,
		},
		Dice: []DieSpec{
			{Sides: 6, Distribution: "uniform"},
			{Sides: 6, Distribution: "uniform"},
		},
		Locations: []LocationSpec{
			idle("Go", 0),
			street("Mediterranean Avenue", "Brown", 1, 60, 2, []int{10, 30, 90, 160}, 250, 50),
			action("Community Chest", ActionPickCommunityChest, 2),
			street("Baltic Avenue", "Brown", 3, 60, 4, []int{20, 60, 180, 320}, 450, 50),
			tax("Income Tax", 4, 200),
			railroad("Reading Railroad", 5),
			street("Oriental Avenue", "SkyBlue", 6, 100, 6, []int{30, 90, 270, 400}, 550, 50),
			action("Chance", ActionPickChance, 7),
			street("Vermont Avenue", "SkyBlue", 8, 100, 6, []int{30, 90, 270, 400}, 550, 50),
			street("Connecticut Avenue", "SkyBlue", 9, 120, 8, []int{40, 100, 300, 450}, 600, 50),
			idle("In Jail/Just Visiting", 10),
			street("St. Charles Place", "Orchid", 11, 140, 10, []int{50, 150, 450, 625}, 750, 100),
			utility("Electric Company", 12),
			street("States Avenue", "Orchid", 13, 140, 10, []int{50, 150, 450, 625}, 750, 100),
			street("Virginia Avenue", "Orchid", 14, 160, 12, []int{60, 180, 500, 700}, 900, 100),
			railroad("Pennsylvania Railroad", 15),
			street("St. James Place", "Orange", 16, 180, 14, []int{70, 200, 550, 750}, 950, 100),
			action("Community Chest 2", ActionPickCommunityChest, 17),
			street("Tennessee Avenue", "Orange", 18, 180, 14, []int{70, 200, 550, 750}, 950, 100),
			street("New York Avenue", "Orange", 19, 200, 16, []int{80, 220, 600, 800}, 1000, 100),
			idle("Free Parking", 20),
			street("Kentucky Avenue", "Red", 21, 220, 18, []int{90, 250, 700, 875}, 1050, 150),
			action("Chance 2", ActionPickChance, 22),
			street("Indiana Avenue", "Red", 23, 220, 18, []int{90, 250, 700, 875}, 1050, 150),
			street("Illinois Avenue", "Red", 24, 240, 20, []int{100, 300, 750, 925}, 1100, 150),
			railroad("B&O Railroad", 25),
			street("Atlantic Avenue", "Yellow", 26, 260, 22, []int{110, 330, 800, 975}, 1150, 150),
			street("Ventnor Avenue", "Yellow", 27, 260, 22, []int{110, 330, 800, 975}, 1150, 150),
			utility("Water Works", 28),
			street("Marvin Gardens", "Yellow", 29, 280, 24, []int{120, 360, 850, 1025}, 1200, 150),
			action("Go to Jail", ActionGoToJail, 30),
			street("Pacific Avenue", "Green", 31, 300, 26, []int{130, 390, 900, 1100}, 1275, 200),
			street("North Carolina Avenue", "Green", 32, 300, 26, []int{130, 390, 900, 1100}, 1275, 200),
			action("Community Chest 3", ActionPickCommunityChest, 33),
			street("Pennsylvania Avenue", "Green", 34, 320, 28, []int{150, 450, 1000, 1200}, 1400, 200),
			railroad("Short Line", 35),
			action("Chance 3", ActionPickChance, 36),
			street("Park Place", "Blue", 37, 350, 35, []int{175, 500, 1100, 1300}, 1500, 200),
			tax("Luxury Tax", 38, 100),
			street("Boardwalk", "Blue", 39, 400, 50, []int{200, 600, 1400, 1700}, 2000, 200),
		},
		Chance: []CardSpec{
			{Name: "Advance to Boardwalk", Kind: CardAdvanceTo, Destination: "Boardwalk"},
			{Name: "Advance to Go", Kind: CardAdvanceTo, Destination: "Go"},
			{Name: "Advance to Illinois Avenue", Kind: CardAdvanceTo, Destination: "Illinois Avenue"},
			{Name: "Advance to St. Charles Place", Kind: CardAdvanceTo, Destination: "St. Charles Place"},
			{Name: "Advance to the nearest Railroad", Kind: CardNearestRailroad, Count: 2},
			{Name: "Advance to the nearest Utility", Kind: CardNearestUtility},
			{Name: "Bank pays you dividend", Kind: CardBankPays, Amount: 50},
			{Name: "Get Out of Jail Free", Kind: CardGetOutOfJailFree},
			{Name: "Go Back Three Spaces", Kind: CardAdvanceRelative, Amount: -3},
			{Name: "Go to Jail", Kind: CardGoToJail},
			{Name: "Make general repairs", Kind: CardStreetRepairs, PerHouse: 25, PerHotel: 100},
			{Name: "Speeding fine", Kind: CardPayBank, Amount: 15},
			{Name: "Take a trip to Reading Railroad", Kind: CardAdvanceTo, Destination: "Reading Railroad"},
			{Name: "Chairman of the Board", Kind: CardPayEachPlayer, Amount: 50},
			{Name: "Building loan matures", Kind: CardBankPays, Amount: 150},
		},
		CommunityChest: []CardSpec{
			{Name: "Advance to Go", Kind: CardAdvanceTo, Destination: "Go"},
			{Name: "Bank error in your favor", Kind: CardBankPays, Amount: 200},
			{Name: "Doctor's fee", Kind: CardPayBank, Amount: 50},
			{Name: "Sale of stock", Kind: CardBankPays, Amount: 50},
			{Name: "Get Out of Jail Free", Kind: CardGetOutOfJailFree},
			{Name: "Go to Jail", Kind: CardGoToJail},
			{Name: "Holiday fund matures", Kind: CardBankPays, Amount: 100},
			{Name: "Income tax refund", Kind: CardBankPays, Amount: 20},
			{Name: "It is your birthday", Kind: CardCollectFromEachPlayer, Amount: 10},
			{Name: "Life insurance matures", Kind: CardBankPays, Amount: 100},
			{Name: "Hospital fees", Kind: CardPayBank, Amount: 100},
			{Name: "School fees", Kind: CardPayBank, Amount: 50},
			{Name: "Consultancy fee", Kind: CardBankPays, Amount: 25},
			{Name: "Street repairs", Kind: CardStreetRepairs, PerHouse: 40, PerHotel: 115},
			{Name: "Beauty contest", Kind: CardBankPays, Amount: 10},
			{Name: "You inherit", Kind: CardBankPays, Amount: 100},
		},
	}
}
