package core

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// Ver0_13_4 is the first protocol version whose v3 transaction hashes
	// commit to the L1 data gas bounds.
	Ver0_13_4 = semver.MustParse("0.13.4")
	// LatestVer is assumed when the caller does not pin a protocol version.
	LatestVer = semver.MustParse("0.13.5")
)

// ParseProtocolVersion parses a Starknet protocol version. Versions with more
// than three components keep only the first three and missing components are
// zero. The empty string yields LatestVer.
func ParseProtocolVersion(protocolVersion string) (*semver.Version, error) {
	if protocolVersion == "" {
		return LatestVer, nil
	}

	sep := "."
	digits := strings.Split(protocolVersion, sep)
	// pad with 3 zeros in case version has less than 3 digits
	digits = append(digits, []string{"0", "0", "0"}...)

	// get first 3 digits only
	version, err := semver.StrictNewVersion(strings.Join(digits[:3], sep))
	if err != nil {
		return nil, fmt.Errorf("cannot parse starknet protocol version %q: %w", protocolVersion, err)
	}
	return version, nil
}

// HashesL1DataGas reports whether v3 transactions of the given protocol
// version include the L1 data gas bounds in their hash.
func HashesL1DataGas(protocolVersion *semver.Version) bool {
	return !protocolVersion.LessThan(Ver0_13_4)
}
