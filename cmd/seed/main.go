// Command seed writes a demo resident file with bcrypt-hashed passwords.
// Passwords cannot be hand-written into the JSON file because the portal
// stores hashes, so this tool generates a ready-to-use file.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"societydesk/internal/domain/resident"
)

type seedEntry struct {
	resident.Resident
	plaintext string
}

func main() {
	out := flag.String("out", "residents.json", "path of the resident file to write")
	flag.Parse()

	entries := []seedEntry{
		{Resident: resident.Resident{ResidentID: "R001", Name: "Asha Patel", Phone: "9876500001", Building: "A", Floor: "3", Flat: "302"}, plaintext: "pass1"},
		{Resident: resident.Resident{ResidentID: "R002", Name: "Vikram Rao", Phone: "9876500002", Building: "A", Floor: "5", Flat: "501"}, plaintext: "pass2"},
		{Resident: resident.Resident{ResidentID: "R003", Name: "Meera Iyer", Phone: "9876500003", Building: "B", Floor: "1", Flat: "104"}, plaintext: "pass3"},
	}

	records := make([]resident.Resident, 0, len(entries))
	for _, e := range entries {
		r := e.Resident
		if err := r.SetPassword(e.plaintext); err != nil {
			log.Fatalf("failed to hash password for %s: %v", r.ResidentID, err)
		}
		records = append(records, r)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode residents: %v", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}

	log.Printf("wrote %d residents to %s (demo passwords pass1..pass%d)", len(records), *out, len(records))
}
