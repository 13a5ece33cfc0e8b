// Package diagnostic collects findings produced while linting remap files and
// while mapping under the Skip policy: skipped fields become warnings, fields
// dropped by a rule become infos, and unusable rules become errors.
package diagnostic
