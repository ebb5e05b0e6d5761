package disk_test

import (
	"testing"

	"github.com/storechain/storechain/foundation/store"
	"github.com/storechain/storechain/foundation/store/registry"
	"github.com/storechain/storechain/foundation/store/registry/storage/disk"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const owner = store.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")

// =============================================================================

func Test_ReadWrite(t *testing.T) {
	addr, _ := registry.ToAddress("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")

	t.Log("Given the need to validate writing and reading records on disk.")
	{
		t.Logf("\tTest 0:\tWhen handling a single store record.")
		{
			d, err := disk.New(t.TempDir())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the disk storage: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the disk storage.", success)

			v1, _ := store.ParseValue("123")
			if err := d.Write(registry.StoreRecord{Address: addr, Owner: owner, Value: v1}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write the record: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write the record.", success)

			rec, err := d.GetStore(addr)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to read the record back: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to read the record back.", success)

			if rec.Value.String() != "123" || rec.Owner != owner {
				t.Fatalf("\t%s\tTest 0:\tShould read back the same record: got %s/%s.", failed, rec.Owner, rec.Value)
			}
			t.Logf("\t%s\tTest 0:\tShould read back the same record.", success)

			// A second write for the same address replaces the record.
			v2, _ := store.ParseValue("456")
			if err := d.Write(registry.StoreRecord{Address: addr, Owner: owner, Value: v2}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to replace the record: %v", failed, err)
			}

			rec, err = d.GetStore(addr)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to read the replaced record: %v", failed, err)
			}

			if rec.Value.String() != "456" {
				t.Fatalf("\t%s\tTest 0:\tShould read back the latest value: got %s, exp 456.", failed, rec.Value)
			}
			t.Logf("\t%s\tTest 0:\tShould read back the latest value.", success)
		}
	}
}

func Test_ForEach(t *testing.T) {
	addrA, _ := registry.ToAddress("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
	addrB, _ := registry.ToAddress("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")

	t.Log("Given the need to validate iterating the records on disk.")
	{
		t.Logf("\tTest 0:\tWhen handling two store records.")
		{
			d, err := disk.New(t.TempDir())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the disk storage: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the disk storage.", success)

			v1, _ := store.ParseValue("123")
			v2, _ := store.ParseValue("456")

			if err := d.Write(registry.StoreRecord{Address: addrA, Owner: owner, Value: v1}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write record A: %v", failed, err)
			}
			if err := d.Write(registry.StoreRecord{Address: addrB, Owner: owner, Value: v2}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write record B: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write both records.", success)

			var recs []registry.StoreRecord
			iter := d.ForEach()
			for rec, err := iter.Next(); !iter.Done(); rec, err = iter.Next() {
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to iterate the records: %v", failed, err)
				}
				recs = append(recs, rec)
			}

			if len(recs) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould iterate both records: got %d.", failed, len(recs))
			}
			t.Logf("\t%s\tTest 0:\tShould iterate both records.", success)

			if recs[0].Address != addrA || recs[1].Address != addrB {
				t.Fatalf("\t%s\tTest 0:\tShould iterate the records in address order.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould iterate the records in address order.", success)

			if err := d.Reset(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to reset the storage: %v", failed, err)
			}

			iter = d.ForEach()
			if _, err := iter.Next(); !iter.Done() {
				t.Fatalf("\t%s\tTest 0:\tShould have no records after a reset: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould have no records after a reset.", success)
		}
	}
}
