package book

// Samples returns the three literal demo books, ordered by id.
func Samples() []Book {
	return []Book{
		{
			id:       "1",
			title:    "book 1 title",
			subtitle: "book 1 subtitle",
			content: "The live Bitcoin price today is $42,178.34 USD with a 24-hour trading volume of " +
				"$34,050,281,021 USD. We update our BTC to USD price in real-time. Bitcoin is up 0.82% " +
				"in the last 24 hours. The current CoinMarketCap ranking is #1, with a live market cap " +
				"of $798,259,325,351 USD. It has a circulating supply of 18,925,812 BTC coins and a max. " +
				"supply of 21,000,000 BTC coins.",
			publishAt: 1578708586000,
		},
		{
			id:       "2",
			title:    "book 2 title",
			subtitle: "book 2 subtitle",
			content: "The live Ethereum price today is $3,112.16 USD with a 24-hour trading volume of " +
				"$20,256,294,451 USD. We update our ETH to USD price in real-time. Ethereum is down 1.17% " +
				"in the last 24 hours. The current CoinMarketCap ranking is #2, with a live market cap " +
				"of $370,698,966,033 USD. It has a circulating supply of 119,112,892 ETH coins and the " +
				"max. supply is not available.",
			publishAt: 1610330986000,
		},
		{
			id:       "3",
			title:    "book 3 title",
			subtitle: "book 3 subtitle",
			content: "The live Tether price today is $1.00 USD with a 24-hour trading volume of " +
				"$72,227,675,169 USD. We update our USDT to USD price in real-time. Tether is down 0.01% " +
				"in the last 24 hours. The current CoinMarketCap ranking is #3, with a live market cap " +
				"of $78,282,212,811 USD. It has a circulating supply of 78,279,163,467 USDT coins and " +
				"the max. supply is not available.",
			publishAt: 1547172586000,
		},
	}
}
