package bench

// benchmarksConfig holds all parameters for each benchmark.
type benchmarksConfig struct {
	benchmarkSimpleConfig
	benchmarkManyConfig
	benchmarkLargeConfig
}

func getMattnConfig() benchmarksConfig {
	return benchmarksConfig{
		benchmarkSimpleConfig: benchmarkSimpleConfig{
			insertXUsers:     100_000,
			insertGoroutines: 1,
		},

		benchmarkManyConfig: benchmarkManyConfig{
			insertXUsers:     1_000,
			queryUsersYTimes: 1_000,
			insertGoroutines: 1,
			queryGoroutines:  1,
		},

		benchmarkLargeConfig: benchmarkLargeConfig{
			insertXBlobs:     5_000,
			insertYBytes:     100_000,
			insertGoroutines: 1,
		},
	}
}

// getLitewrapConfig mirrors the mattn configuration. The litewrap driver
// serializes everything through one connection, so extra goroutines would
// only measure contention.
func getLitewrapConfig() benchmarksConfig {
	return getMattnConfig()
}
