package service

import "github.com/brandonyach/amsadmin/internal/ams/model"

// matchUsers aligns each mapping row against the directory by exact equality
// on the chosen identifier. Zero matches and multiple matches both fail the
// row; a row is never silently bound to one of several candidates. Pure:
// neither input is mutated.
func matchUsers(directory []model.Person, mapping model.MappingTable, key model.UserKey, field model.Field) ([]model.ResolvedUpdate, model.Report) {
	index := make(map[string][]model.Person, len(directory))
	for _, p := range directory {
		id := key.Normalize(key.Identifier(p))
		if id == "" {
			continue
		}
		index[id] = append(index[id], p)
	}

	var resolved []model.ResolvedUpdate
	var unmatched model.Report
	for _, row := range mapping.Rows {
		identifier := row.Value(string(key))
		switch matches := index[key.Normalize(identifier)]; len(matches) {
		case 1:
			resolved = append(resolved, model.ResolvedUpdate{
				Row:      row,
				Person:   matches[0],
				NewValue: row.Value(field.Column),
			})
		case 0:
			unmatched = append(unmatched, model.FailureRecord{
				UserID: identifier,
				Reason: model.ReasonNoMatch,
			})
		default:
			unmatched = append(unmatched, model.FailureRecord{
				UserID: identifier,
				Reason: model.ReasonAmbiguous,
			})
		}
	}
	return resolved, unmatched
}
