package store

import (
	"path/filepath"
	"testing"
)

type record struct {
	Label  string
	Counts map[string]int
}

func TestSaveLoad(tst *testing.T) {
	fn := filepath.Join(tst.TempDir(), "reports.db")
	s, err := Open(fn)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	key := Key("/data/run1.log", "substmodel")
	if string(key) != "/data/run1.log/substmodel" {
		tst.Error("Incorrect key:", string(key))
	}

	var r record
	found, err := s.Load(key, &r)
	if err != nil || found {
		tst.Fatal("Expected no data in empty database:", found, err)
	}

	in := record{Label: "substmodel", Counts: map[string]int{"121121": 90, "121131": 10}}
	if err := s.Save(key, in); err != nil {
		tst.Fatal("Error: ", err)
	}
	if err := s.Close(); err != nil {
		tst.Fatal("Error: ", err)
	}

	s, err = Open(fn)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	defer s.Close()
	found, err = s.Load(key, &r)
	if err != nil || !found {
		tst.Fatal("Expected data after reopening:", found, err)
	}
	if r.Label != in.Label || len(r.Counts) != 2 || r.Counts["121121"] != 90 {
		tst.Error("Incorrect data:", r)
	}

	found, err = s.Load(Key("run2.log", "substmodel"), &r)
	if err != nil || found {
		tst.Error("Unexpected data for another key:", found, err)
	}
}

func TestNilDB(tst *testing.T) {
	if err := SaveData(nil, []byte("k"), []byte("v")); err != nil {
		tst.Error("Error: ", err)
	}
	data, err := LoadData(nil, []byte("k"))
	if err != nil || data != nil {
		tst.Error("Expected no data:", data, err)
	}
}

func TestKeyDirectories(tst *testing.T) {
	k1 := string(Key("a/run.log", "substmodel"))
	k2 := string(Key("b/run.log", "substmodel"))
	if k1 == k2 {
		tst.Error("Logs in different directories share a key:", k1)
	}
	abs, err := filepath.Abs("a/run.log")
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	if k1 != abs+"/substmodel" {
		tst.Error("Incorrect key:", k1)
	}
	if k1 != string(Key("./a/../a/run.log", "substmodel")) {
		tst.Error("Equivalent paths have different keys")
	}
}

func TestSameNameDifferentDirectories(tst *testing.T) {
	dir := tst.TempDir()
	s, err := Open(filepath.Join(dir, "reports.db"))
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	defer s.Close()
	if err := s.Save(Key(filepath.Join(dir, "a", "run.log"), "substmodel"), record{Label: "a"}); err != nil {
		tst.Fatal("Error: ", err)
	}
	var r record
	found, err := s.Load(Key(filepath.Join(dir, "b", "run.log"), "substmodel"), &r)
	if err != nil || found {
		tst.Error("Report of another directory was reused:", found, err)
	}
}
