package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/iov-one/descrow/orm"
)

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b []byte
	if defaultVal != "" {
		var err error
		b, err = hex.DecodeString(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q hex encoded flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fb := flagbytes{b: &b}
	fl.Var(fb, name, usage)
	return &b
}

type flagbytes struct {
	b *[]byte
}

func (f flagbytes) String() string {
	if f.b == nil {
		return ""
	}
	return hex.EncodeToString(*f.b)
}

func (f flagbytes) Set(raw string) error {
	val, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*f.b = val
	return nil
}

// flSeq returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. The
// value is the decimal form of an orm sequence id, such as an escrow id.
func flSeq(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b []byte
	if defaultVal != "" {
		n, err := strconv.ParseUint(defaultVal, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q sequence flag value. %s", name, err)
			os.Exit(2)
		}
		b = orm.EncodeSequence(n)
	}
	fl.Var(flagseq{b: &b}, name, usage)
	return &b
}

type flagseq struct {
	b *[]byte
}

func (f flagseq) String() string {
	if f.b == nil || len(*f.b) == 0 {
		return ""
	}
	n, err := orm.DecodeSequence(*f.b)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(n, 10)
}

func (f flagseq) Set(raw string) error {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return err
	}
	*f.b = orm.EncodeSequence(n)
	return nil
}

// flTime returns a time flag in the RFC3339 format. The zero value stands
// for the current time.
func flTime(fl *flag.FlagSet, name, usage string) *time.Time {
	var t time.Time
	fl.Var(flagtime{t: &t}, name, usage)
	return &t
}

type flagtime struct {
	t *time.Time
}

func (f flagtime) String() string {
	if f.t == nil || f.t.IsZero() {
		return ""
	}
	return f.t.Format(time.RFC3339)
}

func (f flagtime) Set(raw string) error {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return err
	}
	*f.t = t
	return nil
}
