package categories

// Derived holds everything the deriver computes for one listing.
type Derived struct {
	StateTags   []string
	FeatureTags []string
	PriceBucket string
}

// Derive computes tag sets and the price bucket from the raw tag fields and
// price of a listing. PriceBucket is always non-empty.
func Derive(stateRaw, featureRaw, explicitBucket string, priceNumeric *int) Derived {
	return Derived{
		StateTags:   SplitTags(stateRaw),
		FeatureTags: SplitTags(featureRaw),
		PriceBucket: PriceBucket(explicitBucket, priceNumeric),
	}
}
