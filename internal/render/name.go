package render

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

const plotModule = "gonum.org/v1/plot"

// DateLayout is the layout of the optional date stamp in file names.
const DateLayout = "2006-01-02"

// OutputName returns the base name of the plot for sample count n, tagged
// with the toolchain and plotting library versions.
func OutputName(n int) string {
	return fmt.Sprintf("qqplot_example_plot_n_%d_%s", n, EnvironmentTag())
}

// EnvironmentTag identifies the runtime that produced an artifact, for
// example "Go_1.24.4_plot_v0.15.2".
func EnvironmentTag() string {
	return fmt.Sprintf("Go_%s_plot_%s", strings.TrimPrefix(runtime.Version(), "go"), plotVersion())
}

func plotVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == plotModule {
			if dep.Replace != nil {
				dep = dep.Replace
			}
			return dep.Version
		}
	}
	return "unknown"
}

// stamp appends "_YYYY-MM-DD" to name.
func stamp(name string, at time.Time) string {
	return name + "_" + at.Format(DateLayout)
}
