package grid

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

//gvz is this library's grid file format: a zstd-compressed text stream with a
//three-line header (magic+version, shape, cell) followed by the values, one
//z-column per line. Plain text under compression keeps the files greppable
//after a zstdcat while staying a fraction of the size of the raw cube.

// WriteFile writes g to filename in the gvz format.
func WriteFile(filename string, g *Grid) error {
	f, err := os.Create(filename)
	if err != nil {
		return Error{message: UnableToOpen, filename: filename, critical: true}
	}
	defer f.Close()
	z, err := zstd.NewWriter(f)
	if err != nil {
		return Error{message: err.Error(), filename: filename, critical: true}
	}
	bw := bufio.NewWriter(z)
	fmt.Fprintf(bw, "gvz 1\n")
	fmt.Fprintf(bw, "shape %d %d %d\n", g.shape[0], g.shape[1], g.shape[2])
	fmt.Fprintf(bw, "cell")
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			fmt.Fprintf(bw, " %s", strconv.FormatFloat(g.cell.At(i, j), 'g', -1, 64))
		}
	}
	fmt.Fprintf(bw, "\n")
	for i := 0; i < g.shape[0]; i++ {
		for j := 0; j < g.shape[1]; j++ {
			for k := 0; k < g.shape[2]; k++ {
				if k > 0 {
					bw.WriteByte(' ')
				}
				bw.WriteString(strconv.FormatFloat(g.At(i, j, k), 'g', -1, 64))
			}
			bw.WriteByte('\n')
		}
	}
	if err := bw.Flush(); err != nil {
		return errDecorate(Error{message: err.Error(), filename: filename, critical: true}, "WriteFile")
	}
	if err := z.Close(); err != nil {
		return errDecorate(Error{message: err.Error(), filename: filename, critical: true}, "WriteFile")
	}
	return nil
}

// ReadFile reads a gvz file back into a Grid.
func ReadFile(filename string) (*Grid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{message: UnableToOpen, filename: filename, critical: true}
	}
	defer f.Close()
	z, err := zstd.NewReader(f)
	if err != nil {
		return nil, Error{message: err.Error(), filename: filename, critical: true}
	}
	defer z.Close()
	br := bufio.NewReader(z)

	line, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "gvz 1" {
		return nil, Error{message: WrongFormat, filename: filename, critical: true}
	}
	line, err = br.ReadString('\n')
	if err != nil {
		return nil, Error{message: WrongFormat, filename: filename, critical: true}
	}
	var shape [3]int
	if _, err := fmt.Sscanf(line, "shape %d %d %d", &shape[0], &shape[1], &shape[2]); err != nil {
		return nil, Error{message: WrongFormat, filename: filename, critical: true}
	}
	line, err = br.ReadString('\n')
	if err != nil {
		return nil, Error{message: WrongFormat, filename: filename, critical: true}
	}
	fields := strings.Fields(line)
	if len(fields) != 10 || fields[0] != "cell" {
		return nil, Error{message: WrongFormat, filename: filename, critical: true}
	}
	cell := mat.NewDense(3, 3, nil)
	for n, field := range fields[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, Error{message: WrongFormat, filename: filename, critical: true}
		}
		cell.Set(n/3, n%3, v)
	}

	g, err := New(shape, cell)
	if err != nil {
		return nil, errDecorate(Error{message: err.Error(), filename: filename, critical: true}, "ReadFile")
	}
	for i := 0; i < shape[0]; i++ {
		for j := 0; j < shape[1]; j++ {
			line, err = br.ReadString('\n')
			if err != nil {
				return nil, Error{message: EOF, filename: filename, critical: true}
			}
			vals := strings.Fields(line)
			if len(vals) != shape[2] {
				return nil, Error{message: WrongFormat, filename: filename, critical: true}
			}
			for k, s := range vals {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, Error{message: WrongFormat, filename: filename, critical: true}
				}
				g.Set(i, j, k, v)
			}
		}
	}
	return g, nil
}

//Errors

//errDecorate asserts that err implements esviz.Error and adds the caller's
//name to its decoration before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(interface{ Decorate(string) []string })
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err
}

// Error is the structure for gvz file errors. It implements esviz.Error.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("gvz file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file the failing grid was associated to.
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file (always "gvz").
func (err Error) Format() string { return "gvz" }

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in the GVZ file"
	EOF          = "EOF before the declared shape was read"
)
