// Package validation turns raw player payloads and list queries into
// normalized values, collecting every field problem into one ValidationError.
package validation

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/naijascout/scout-services/shared/apperr"
	"github.com/naijascout/scout-services/shared/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field limits.
const (
	MinAge            = 16
	MaxAge            = 50
	MaxNameLen        = 50
	MinNationalityLen = 2
	MaxNationalityLen = 50
	MaxClubLen        = 100
	MaxImageLen       = 300
	MinAttribute      = 0
	MaxAttribute      = 100
	// MaxCount bounds every engagement counter so scout points and the
	// aggregate sums stay far from integer overflow.
	MaxCount = math.MaxInt32
)

type inputField struct {
	key  string
	want string
	dst  interface{}
}

func inputFields(in *models.PlayerInput) []inputField {
	return []inputField{
		{"name", "string", &in.Name},
		{"position", "string", &in.Position},
		{"age", "number", &in.Age},
		{"nationality", "string", &in.Nationality},
		{"club", "string", &in.Club},
		{"engagement", "object", &in.Engagement},
		{"attributes", "object", &in.Attributes},
		{"stats", "object", &in.Stats},
		{"status", "string", &in.Status},
		{"image", "string", &in.Image},
	}
}

// DecodePlayer parses a JSON body into a PlayerInput. Malformed JSON and a
// non-object body come back as a ValidationError on "body". Fields are
// decoded one by one, so a field holding the wrong JSON type is reported
// together with every other problem in the payload.
func DecodePlayer(body []byte) (*models.PlayerInput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, apperr.NewValidationError("body", "Request body must be a JSON object")
	}

	var in models.PlayerInput
	v := &apperr.ValidationError{}
	for _, f := range inputFields(&in) {
		msg, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, f.dst); err != nil {
			v.Add(f.key, "Invalid value type, expected "+f.want)
		}
	}
	if len(v.Fields) == 0 {
		return &in, nil
	}

	var rest *apperr.ValidationError
	if _, err := Player(&in); errors.As(err, &rest) {
		for _, fe := range rest.Fields {
			if !undecoded(v, fe.Field) {
				v.Fields = append(v.Fields, fe)
			}
		}
	}
	return nil, v
}

// undecoded reports whether field, or the group containing it, already
// failed to decode.
func undecoded(v *apperr.ValidationError, field string) bool {
	for _, f := range v.Fields {
		if field == f.Field || strings.HasPrefix(field, f.Field+".") {
			return true
		}
	}
	return false
}

// Player validates a decoded payload and returns the normalized fields.
func Player(in *models.PlayerInput) (*models.PlayerFields, error) {
	v := &apperr.ValidationError{}
	if in == nil {
		in = &models.PlayerInput{}
	}
	out := &models.PlayerFields{}

	if in.Name == nil {
		v.Add("name", "Name is required and must be less than 50 characters")
	} else {
		name := strings.TrimSpace(*in.Name)
		if n := utf8.RuneCountInString(name); n < 1 || n > MaxNameLen {
			v.Add("name", "Name is required and must be less than 50 characters")
		}
		out.Name = name
	}

	if age, ok := intInRange(in.Age, MinAge, MaxAge); ok {
		out.Age = age
	} else {
		v.Add("age", "Age must be between 16 and 50")
	}

	if in.Position == nil || !models.Position(*in.Position).Valid() {
		v.Add("position", "Invalid position")
	} else {
		out.Position = models.Position(*in.Position)
	}

	if in.Nationality != nil {
		nat := strings.TrimSpace(*in.Nationality)
		if n := utf8.RuneCountInString(nat); n < MinNationalityLen || n > MaxNationalityLen {
			v.Add("nationality", "Nationality must be between 2 and 50 characters")
		}
		out.Nationality = &nat
	}

	if in.Club != nil {
		club := strings.TrimSpace(*in.Club)
		if n := utf8.RuneCountInString(club); n < 1 || n > MaxClubLen {
			v.Add("club", "Club must be between 1 and 100 characters")
		}
		out.Club = &club
	}

	engagement(in.Engagement, &out.Engagement, v)

	attrs, prefix := in.Attributes, "attributes"
	if attrs == nil && in.Stats != nil {
		attrs, prefix = in.Stats, "stats"
	}
	attributes(attrs, prefix, &out.Attributes, v)

	if in.Status != nil {
		s := models.Status(*in.Status)
		if !s.Valid() {
			v.Add("status", "Invalid status")
		}
		out.Status = &s
	}

	if in.Image != nil {
		if utf8.RuneCountInString(*in.Image) > MaxImageLen {
			v.Add("image", "Image must be at most 300 characters")
		}
		img := *in.Image
		out.Image = &img
	}

	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func engagement(in *models.EngagementInput, out *models.EngagementFields, v *apperr.ValidationError) {
	if in == nil {
		in = &models.EngagementInput{}
	}
	required := []struct {
		field, label string
		val          *models.Number
		dst          *int
	}{
		{"engagement.goals", "Goals", in.Goals, &out.Goals},
		{"engagement.assists", "Assists", in.Assists, &out.Assists},
		{"engagement.interactions", "Interactions", in.Interactions, &out.Interactions},
	}
	for _, r := range required {
		n, ok := intInRange(r.val, 0, MaxCount)
		if !ok {
			v.Add(r.field, countMessage(r.label, r.val))
			continue
		}
		*r.dst = n
	}

	optional := []struct {
		field, label string
		val          *models.Number
		dst          **int
	}{
		{"engagement.matches", "Matches", in.Matches, &out.Matches},
		{"engagement.minutes", "Minutes", in.Minutes, &out.Minutes},
	}
	for _, o := range optional {
		if o.val == nil {
			continue
		}
		n, ok := intInRange(o.val, 0, MaxCount)
		if !ok {
			v.Add(o.field, countMessage(o.label, o.val))
			continue
		}
		*o.dst = &n
	}
}

func countMessage(label string, n *models.Number) string {
	if n != nil {
		if i, err := n.Int(); err == nil && i > MaxCount {
			return label + " must be at most " + strconv.Itoa(MaxCount)
		}
	}
	return label + " must be a non-negative integer"
}

func attributes(in *models.AttributesInput, prefix string, out *models.AttributeFields, v *apperr.ValidationError) {
	if in == nil {
		return
	}
	fields := []struct {
		key, label string
		val        *models.Number
		dst        **int
	}{
		{"pace", "Pace", in.Pace, &out.Pace},
		{"shooting", "Shooting", in.Shooting, &out.Shooting},
		{"passing", "Passing", in.Passing, &out.Passing},
		{"dribbling", "Dribbling", in.Dribbling, &out.Dribbling},
		{"defending", "Defending", in.Defending, &out.Defending},
		{"physical", "Physical", in.Physical, &out.Physical},
	}
	for _, f := range fields {
		if f.val == nil {
			continue
		}
		n, ok := intInRange(f.val, MinAttribute, MaxAttribute)
		if !ok {
			v.Add(prefix+"."+f.key, f.label+" must be between 0 and 100")
			continue
		}
		*f.dst = &n
	}
}

// PlayerID parses a store id. Anything that is not a 24-hex ObjectID is a
// validation failure, never a not-found.
func PlayerID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.NewValidationError("id", "Invalid player ID")
	}
	return oid, nil
}

// Update validates an update request, reporting a malformed id and every
// payload problem in the same ValidationError.
func Update(id string, in *models.PlayerInput) (primitive.ObjectID, *models.PlayerFields, error) {
	oid, idErr := PlayerID(id)
	fields, err := Player(in)
	if err := apperr.JoinValidation(idErr, err); err != nil {
		return primitive.NilObjectID, nil, err
	}
	return oid, fields, nil
}

// ListQuery validates list parameters and fills defaults for absent ones.
func ListQuery(values url.Values) (models.PlayerQuery, error) {
	q := models.DefaultPlayerQuery()
	v := &apperr.ValidationError{}

	if raw, ok := param(values, "sort"); ok {
		f, valid := models.ParseSortField(raw)
		if !valid {
			v.Add("sort", "Invalid sort field")
		}
		q.Sort.Field = f
	}
	if raw, ok := param(values, "order"); ok {
		o, valid := models.ParseSortOrder(raw)
		if !valid {
			v.Add("order", "Order must be asc or desc")
		}
		q.Sort.Order = o
	}
	if raw, ok := param(values, "limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > models.MaxLimit {
			v.Add("limit", "Limit must be between 1 and 100")
		}
		q.Limit = n
	}
	if raw, ok := param(values, "page"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			v.Add("page", "Page must be at least 1")
		}
		q.Page = n
	}
	if raw, ok := param(values, "position"); ok {
		p := models.Position(raw)
		if !p.Valid() {
			v.Add("position", "Invalid position")
		}
		q.Filter.Position = &p
	}
	if raw, ok := param(values, "status"); ok {
		s := models.Status(raw)
		if !s.Valid() {
			v.Add("status", "Invalid status")
		}
		q.Filter.Status = &s
	}

	if err := v.OrNil(); err != nil {
		return models.PlayerQuery{}, err
	}
	return q, nil
}

// param returns the first value of key. Empty strings count as absent.
func param(values url.Values, key string) (string, bool) {
	raw := values.Get(key)
	return raw, raw != ""
}

// intInRange parses n and checks lo <= n <= hi.
func intInRange(n *models.Number, lo, hi int) (int, bool) {
	if n == nil {
		return 0, false
	}
	i, err := n.Int()
	if err != nil || i < lo || i > hi {
		return 0, false
	}
	return i, true
}
