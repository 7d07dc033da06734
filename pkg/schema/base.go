package schema

import "fmt"

// Classification is the outcome of evaluating one requirement.
type Classification string

const (
	ClassificationMet      Classification = "ATENDIDO" // every criterion needed was found
	ClassificationDoubtful Classification = "DUVIDOSO" // partial evidence
	ClassificationMissing  Classification = "FALTANDO" // not enough evidence
)

// Status is the overall outcome of a validation.
type Status string

const (
	StatusApproved Status = "APROVADO"
	StatusRejected Status = "REPROVADO"
)

// RequirementKey is the stable identifier of one checkable obligation.
type RequirementKey string

const (
	KeyGeneralExperience RequirementKey = "general_experience"
	KeyGroup1ItemI       RequirementKey = "group_1_item_i"
	KeyGroup1ItemII      RequirementKey = "group_1_item_ii"
	KeyGroup1ItemIII     RequirementKey = "group_1_item_iii"
	KeyGroup1ItemIV      RequirementKey = "group_1_item_iv"
	KeyGroup2ItemI       RequirementKey = "group_2_item_i"
	KeyGroup2ItemII      RequirementKey = "group_2_item_ii"
	KeyGroup2ItemIII     RequirementKey = "group_2_item_iii"
	KeyGroup2ItemIV      RequirementKey = "group_2_item_iv"
	KeyMandatoryProof    RequirementKey = "mandatory_proof"

	// KeyError carries the failure note of a degraded assessment.
	KeyError RequirementKey = "error"
)

// Group and item identifiers used by the compliance template.
var (
	GroupIDs = []string{"1", "2"}
	ItemIDs  = []string{"i", "ii", "iii", "iv"}
)

// CumulativeItems must all hold for a group's obligation to be discharged.
var CumulativeItems = []string{"i", "ii", "iii"}

// ItemKey builds the requirement key for an item within a group.
func ItemKey(group, item string) RequirementKey {
	return RequirementKey(fmt.Sprintf("group_%s_item_%s", group, item))
}

// MandatoryKeys returns the ten mandatory requirement keys in validation order.
func MandatoryKeys() []RequirementKey {
	return []RequirementKey{
		KeyGeneralExperience,
		KeyGroup1ItemI, KeyGroup1ItemII, KeyGroup1ItemIII, KeyGroup1ItemIV,
		KeyGroup2ItemI, KeyGroup2ItemII, KeyGroup2ItemIII, KeyGroup2ItemIV,
		KeyMandatoryProof,
	}
}

// IsMandatory reports whether key is one of the ten mandatory keys.
func IsMandatory(key RequirementKey) bool {
	for _, k := range MandatoryKeys() {
		if k == key {
			return true
		}
	}
	return false
}
