package authz

// Resource kinds the policy table covers.
type Resource int

const (
	Catalog Resource = iota // categories, genres, titles
	ReviewResource
	CommentResource
	UserResource
)

// Action is the operation class being authorized.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// policy is the enumerated permission table. Every (resource, action)
// pair lists the roles it admits; an absent pair denies everyone.
//
// Review/comment creation deliberately lists every role, Anonymous
// included: the historical access rule for those endpoints admits any
// requester category, and the effective gate is author binding (writes
// need an identity) plus the one-review-per-title constraint downstream.
// Review/comment update and delete are handled by CanModify, which adds
// the ownership predicate the static table cannot express.
var policy = map[Resource]map[Action][]Role{
	Catalog: {
		ActionRead:   {Anonymous, User, Moderator, Admin},
		ActionCreate: {Admin},
		ActionUpdate: {Admin},
		ActionDelete: {Admin},
	},
	ReviewResource: {
		ActionRead:   {Anonymous, User, Moderator, Admin},
		ActionCreate: {Anonymous, User, Moderator, Admin},
	},
	CommentResource: {
		ActionRead:   {Anonymous, User, Moderator, Admin},
		ActionCreate: {Anonymous, User, Moderator, Admin},
	},
	UserResource: {
		ActionRead:   {Admin},
		ActionCreate: {Admin},
		ActionUpdate: {Admin},
		ActionDelete: {Admin},
	},
}

// Allow answers whether the requester's role may perform action on the
// given resource kind. Pure function over the policy table.
func Allow(req Requester, res Resource, action Action) bool {
	actions, ok := policy[res]
	if !ok {
		return false
	}
	for _, role := range actions[action] {
		if role == req.Role {
			return true
		}
	}
	return false
}

// CanModify answers whether the requester may update or delete a review
// or comment owned by authorID: the author may, and so may moderators
// and admins.
func CanModify(req Requester, authorID string) bool {
	if !req.Authenticated() {
		return false
	}
	switch req.Role {
	case Moderator, Admin:
		return true
	default:
		return req.UserID == authorID
	}
}
