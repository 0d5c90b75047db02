package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gyldnet/gyld-contract/rpc/accessregistry"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	registryAddress := flag.String("contract", "", "Address of the access registry contract")
	checkSubject := flag.String("check", "", "Check approval of the given account instead of listing denials")
	listLimit := flag.Int("limit", 100, "Maximum number of denial records to list")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *registryAddress == "":
		log.Fatal("missing access registry contract address")
	}

	registryHash, err := parseUint160(*registryAddress)
	if err != nil {
		log.Fatal(fmt.Errorf("parse access registry contract address: %w", err))
	}

	b, err := newRemoteBlockchain(*neoRPCEndpoint)
	if err != nil {
		log.Fatal(fmt.Errorf("init remote blockchain: %w", err))
	}

	defer b.close()

	reader := accessregistry.NewReader(b.invoker, registryHash)

	if *checkSubject != "" {
		err = checkApproval(reader, *checkSubject)
	} else {
		err = listDenied(reader, *listLimit)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func checkApproval(reader *accessregistry.ContractReader, subject string) error {
	subjectHash, err := parseUint160(subject)
	if err != nil {
		return fmt.Errorf("parse subject account: %w", err)
	}

	approved, err := reader.IsApproved(subjectHash)
	if err != nil {
		return fmt.Errorf("query approval: %w", err)
	}

	fmt.Printf("%s: approved=%t", address.Uint160ToString(subjectHash), approved)

	denied, err := reader.IsDenied(subjectHash)
	if err != nil {
		return fmt.Errorf("query denial record: %w", err)
	}

	if denied {
		entry, err := reader.DenialRecord(subjectHash)
		if err != nil {
			return fmt.Errorf("read denial record: %w", err)
		}

		fmt.Printf(" denied_at=%s", formatTimestamp(entry.CreatedAt.Int64()))
	}

	fmt.Println()

	return nil
}

func listDenied(reader *accessregistry.ContractReader, limit int) error {
	count, err := reader.DenialCount()
	if err != nil {
		return fmt.Errorf("query denial count: %w", err)
	}

	fmt.Printf("denied identities: %s\n", count)

	items, err := reader.IterateDeniedExpanded(limit)
	if err != nil {
		return fmt.Errorf("iterate denial records: %w", err)
	}

	for i := range items {
		var entry accessregistry.AccessregistryDenialEntry

		err = entry.FromStackItem(items[i])
		if err != nil {
			return fmt.Errorf("decode denial record #%d: %w", i, err)
		}

		fmt.Printf("%s denied_at=%s\n",
			address.Uint160ToString(entry.Subject), formatTimestamp(entry.CreatedAt.Int64()))
	}

	if len(items) == limit {
		fmt.Printf("output limited to %d records, rerun with bigger -limit for more\n", limit)
	}

	return nil
}

// parseUint160 accepts both Neo address and hex script hash forms.
func parseUint160(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}

	return util.Uint160DecodeStringLE(s)
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
