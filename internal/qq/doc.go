// Package qq implements the quantile-quantile transform behind the plots.
//
// For a sample count N the generator draws N standard normal samples from a
// PCG source seeded with a fixed value, sorts them, and pairs the i-th
// smallest sample with the theoretical quantile Φ⁻¹((i - 0.5)/N). The result
// is an N×2 gonum matrix whose first column holds the theoretical quantiles
// and whose second column holds the sorted samples.
//
// Both columns are non-decreasing. Reseeding on every call makes the output
// for a given N identical across calls and across runs.
//
//	gen := qq.NewGenerator(123456789)
//	set, err := gen.Generate(100)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(qq.Summarize(set).Correlation)
package qq
