// Command fit-inspect reports on the distance/time trace inside a FIT file,
// to debug activity imports before they feed the record search.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/basetype"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"

	"github.com/stridehq/stride/pkg/domain/records"
	"github.com/stridehq/stride/pkg/types"
)

func main() {
	inputPath := flag.String("input", "", "Path to FIT file")
	targetKey := flag.String("target", "", "Also search for a record segment (5k, 10k, semi, 30k, marathon)")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Please provide input file with -input")
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}

	fitDec := decoder.New(bytes.NewReader(data))

	recordCount := 0
	invalidCount := 0
	backwardsCount := 0
	var firstTimestamp time.Time
	var points []records.Point
	for fitDec.Next() {
		fitData, err := fitDec.Decode()
		if err != nil {
			fmt.Printf("Failed to decode FIT file: %v\n", err)
			os.Exit(1)
		}

		for _, msg := range fitData.Messages {
			if msg.Num != typedef.MesgNumRecord {
				continue
			}
			recordCount++

			rec := mesgdef.NewRecord(&msg)
			if rec.Timestamp.IsZero() || rec.Distance == basetype.Uint32Invalid {
				invalidCount++
				continue
			}

			distanceM := float64(rec.Distance) / 100
			if len(points) > 0 && distanceM < points[len(points)-1].CumulativeDistanceM {
				backwardsCount++
			}
			if firstTimestamp.IsZero() {
				firstTimestamp = rec.Timestamp
			}
			elapsed := rec.Timestamp.Sub(firstTimestamp).Seconds()
			points = append(points, records.Point{
				CumulativeDistanceM: distanceM,
				ElapsedTimeSec:      elapsed,
			})
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Record messages\t%d\n", recordCount)
	fmt.Fprintf(w, "Usable samples\t%d\n", len(points))
	fmt.Fprintf(w, "Invalid samples\t%d\n", invalidCount)
	fmt.Fprintf(w, "Backwards distance steps\t%d\n", backwardsCount)
	if len(points) > 1 {
		last := points[len(points)-1]
		fmt.Fprintf(w, "Total distance\t%.2f km\n", last.CumulativeDistanceM/1000)
		fmt.Fprintf(w, "Total time\t%s\n", types.FormatDuration(int(last.ElapsedTimeSec)))
		if last.CumulativeDistanceM > 0 {
			pace := last.ElapsedTimeSec / (last.CumulativeDistanceM / 1000)
			fmt.Fprintf(w, "Average pace\t%s/km\n", types.FormatPace(pace))
		}
	}
	w.Flush()

	if *targetKey != "" {
		target, ok := records.TargetByKey(*targetKey)
		if !ok {
			fmt.Printf("Unknown target %q\n", *targetKey)
			os.Exit(1)
		}
		seg := records.FindBestSegment(points, target.Meters, records.SearchOptions{})
		if seg == nil {
			fmt.Printf("\nNo %s segment found.\n", target.Key)
			return
		}
		fmt.Printf("\nBest %s: %s (%s/km), km %.2f to %.2f\n",
			target.Key,
			types.FormatDuration(int(seg.DurationSec)),
			types.FormatPace(seg.DurationSec/target.Km),
			seg.StartDistanceM/1000,
			seg.EndDistanceM/1000)
	}
}
