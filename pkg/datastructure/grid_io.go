package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/util"
)

/*
WriteTimeGrid. bzip2 compressed text:

	<nlat> <nlon> <ntimes>
	<lat_0> ... <lat_nlat-1>
	<lon_0> ... <lon_nlon-1>
	<t_0> ... <t_ntimes-1>            (empty line for a static grid)
	max(1,ntimes) layers of nlat rows with nlon values each
*/
func WriteTimeGrid(filename string, tg *TimeGrid) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		f.Close()
		return err
	}

	w := bufio.NewWriter(bz)

	first := tg.layers[0]
	fmt.Fprintf(w, "%d %d %d\n", len(first.lats), len(first.lons), len(tg.times))
	writeFloats(w, first.lats)
	writeFloats(w, first.lons)

	for i, t := range tg.times {
		fmt.Fprintf(w, "%d", t)
		if i < len(tg.times)-1 {
			fmt.Fprintf(w, " ")
		}
	}
	fmt.Fprintf(w, "\n")

	for _, layer := range tg.layers {
		nLon := len(layer.lons)
		for i := range layer.lats {
			writeFloats(w, layer.values[i*nLon:(i+1)*nLon])
		}
	}

	return closeCompressed(f, bz, w)
}

// closeCompressed flushes w, then closes the bzip2 stream and the file, returning the first error.
func closeCompressed(f *os.File, bz *bzip2.Writer, w *bufio.Writer) error {
	if err := w.Flush(); err != nil {
		bz.Close()
		f.Close()
		return err
	}
	if err := bz.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFloats(w *bufio.Writer, vals []float64) {
	for i, v := range vals {
		fmt.Fprint(w, strconv.FormatFloat(v, 'f', -1, 64))
		if i < len(vals)-1 {
			fmt.Fprintf(w, " ")
		}
	}
	fmt.Fprintf(w, "\n")
}

func ReadTimeGrid(filename string) (*TimeGrid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("grid header: want 3 fields, got %d", len(tokens))
	}
	var dims [3]int
	for i, tok := range tokens {
		dims[i], err = strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("grid header: %w", err)
		}
	}
	nLat, nLon, nTimes := dims[0], dims[1], dims[2]

	lats, err := readFloats(br, nLat)
	if err != nil {
		return nil, fmt.Errorf("grid latitudes: %w", err)
	}
	lons, err := readFloats(br, nLon)
	if err != nil {
		return nil, fmt.Errorf("grid longitudes: %w", err)
	}

	line, err = util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	timeTokens := strings.Fields(line)
	if len(timeTokens) != nTimes {
		return nil, fmt.Errorf("grid times: want %d values, got %d", nTimes, len(timeTokens))
	}
	times := make([]int64, nTimes)
	for i, tok := range timeTokens {
		times[i], err = strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("grid times: %w", err)
		}
	}

	nLayers := max(1, nTimes)
	layers := make([]*Grid, nLayers)
	for k := 0; k < nLayers; k++ {
		values := make([]float64, 0, nLat*nLon)
		for i := 0; i < nLat; i++ {
			row, err := readFloats(br, nLon)
			if err != nil {
				return nil, fmt.Errorf("grid layer %d row %d: %w", k, i, err)
			}
			values = append(values, row...)
		}
		layers[k], err = NewGrid(lats, lons, values)
		if err != nil {
			return nil, err
		}
	}

	if nTimes == 0 {
		return NewStaticTimeGrid(layers[0]), nil
	}
	return NewTimeGrid(times, layers)
}

func readFloats(br *bufio.Reader, n int) ([]float64, error) {
	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(line)
	if len(tokens) != n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(tokens))
	}
	vals := make([]float64, n)
	for i, tok := range tokens {
		vals[i], err = strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, err
		}
	}
	return vals, nil
}
