package openapi

// Build returns the document describing every endpoint of the service.
func Build(info Info) *Document {
	bearer := []SecurityRequirement{{"bearerAuth": {}}}

	return &Document{
		OpenAPI: Version,
		Info:    info,
		Tags: []Tag{
			{Name: "Users", Description: "Registration and token lifecycle"},
			{Name: "Packs", Description: "Operations on packs"},
			{Name: "Items", Description: "Operations on items"},
			{Name: "Ops", Description: "Health checks"},
		},
		Paths: map[string]PathItem{
			"/register": {
				"post": {
					Tags: []string{"Users"}, Summary: "Register a new user", OperationID: "register",
					RequestBody: jsonBody("UserCredentials"),
					Responses: withErrors(map[string]Response{
						"201": jsonResponse("User created", "User"),
					}, "400", "409"),
				},
			},
			"/login": {
				"post": {
					Tags: []string{"Users"}, Summary: "Exchange credentials for a fresh access token and a refresh token", OperationID: "login",
					RequestBody: jsonBody("UserCredentials"),
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("Tokens issued", "Tokens"),
					}, "400", "401"),
				},
			},
			"/refresh": {
				"post": {
					Tags: []string{"Users"}, Summary: "Exchange a refresh token for a non-fresh access token", OperationID: "refresh",
					Security: bearer,
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("Access token issued", "AccessToken"),
					}, "401"),
				},
			},
			"/logout": {
				"post": {
					Tags: []string{"Users"}, Summary: "Revoke the current access token", OperationID: "logout",
					Security: bearer,
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("Token revoked", "Message"),
					}, "401"),
				},
			},
			"/user/{user_id}": {
				"get": {
					Tags: []string{"Users"}, Summary: "Get a user", OperationID: "getUser",
					Security:   bearer,
					Parameters: []Parameter{pathID("user_id")},
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("The user", "User"),
					}, "401", "404"),
				},
			},
			"/pack": {
				"get": {
					Tags: []string{"Packs"}, Summary: "List packs with their items", OperationID: "listPacks",
					Responses: withErrors(map[string]Response{
						"200": jsonArrayResponse("All packs", "Pack"),
					}),
				},
				"post": {
					Tags: []string{"Packs"}, Summary: "Create a pack owned by the caller", OperationID: "createPack",
					Security:    bearer,
					RequestBody: jsonBody("PackInput"),
					Responses: withErrors(map[string]Response{
						"201": jsonResponse("Pack created", "Pack"),
					}, "400", "401", "409"),
				},
			},
			"/pack/{pack_id}": {
				"get": {
					Tags: []string{"Packs"}, Summary: "Get a pack with its items", OperationID: "getPack",
					Parameters: []Parameter{pathID("pack_id")},
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("The pack", "Pack"),
					}, "404"),
				},
				"put": {
					Tags: []string{"Packs"}, Summary: "Update a pack, creating it when missing", OperationID: "updatePack",
					Security:    bearer,
					Parameters:  []Parameter{pathID("pack_id")},
					RequestBody: jsonBody("PackInput"),
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("Pack updated", "Pack"),
						"201": jsonResponse("Pack created", "Pack"),
					}, "400", "401", "403", "409"),
				},
				"delete": {
					Tags: []string{"Packs"}, Summary: "Delete a pack and its items (fresh token required)", OperationID: "deletePack",
					Security:   bearer,
					Parameters: []Parameter{pathID("pack_id")},
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("Pack deleted", "Message"),
					}, "401", "403", "404"),
				},
			},
			"/pack/{pack_id}/summary": {
				"get": {
					Tags: []string{"Packs"}, Summary: "Price summary of a pack", OperationID: "getPackSummary",
					Parameters: []Parameter{pathID("pack_id")},
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("The summary", "PackSummary"),
					}, "404"),
				},
			},
			"/item": {
				"get": {
					Tags: []string{"Items"}, Summary: "List items", OperationID: "listItems",
					Parameters: []Parameter{{Name: "pack_id", In: "query", Schema: &Schema{Type: "integer", Format: "int64"}}},
					Responses: withErrors(map[string]Response{
						"200": jsonArrayResponse("Items", "Item"),
					}, "400"),
				},
				"post": {
					Tags: []string{"Items"}, Summary: "Create an item in an existing pack (fresh token required)", OperationID: "createItem",
					Security:    bearer,
					RequestBody: jsonBody("ItemInput"),
					Responses: withErrors(map[string]Response{
						"201": jsonResponse("Item created", "Item"),
					}, "400", "401", "403", "404", "409"),
				},
			},
			"/item/{item_id}": {
				"get": {
					Tags: []string{"Items"}, Summary: "Get an item", OperationID: "getItem",
					Parameters: []Parameter{pathID("item_id")},
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("The item", "Item"),
					}, "404"),
				},
				"put": {
					Tags: []string{"Items"}, Summary: "Update an item, creating it when missing", OperationID: "updateItem",
					Security:    bearer,
					Parameters:  []Parameter{pathID("item_id")},
					RequestBody: jsonBody("ItemUpdate"),
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("Item updated", "Item"),
						"201": jsonResponse("Item created", "Item"),
					}, "400", "401", "403", "404", "409"),
				},
				"delete": {
					Tags: []string{"Items"}, Summary: "Delete an item", OperationID: "deleteItem",
					Security:   bearer,
					Parameters: []Parameter{pathID("item_id")},
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("Item deleted", "Message"),
					}, "401", "403", "404"),
				},
			},
			"/healthz": {
				"get": {
					Tags: []string{"Ops"}, Summary: "Liveness and datastore check", OperationID: "health",
					Responses: withErrors(map[string]Response{
						"200": jsonResponse("Healthy", "Health"),
					}),
				},
			},
		},
		Components: Components{
			Schemas: schemas(),
			SecuritySchemes: map[string]SecurityScheme{
				"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
			},
		},
	}
}

func schemas() map[string]*Schema {
	id := func() *Schema { return &Schema{Type: "integer", Format: "int64", ReadOnly: true} }
	timestamp := func() *Schema {
		return &Schema{Type: "integer", Format: "int64", ReadOnly: true, Description: "Unix seconds"}
	}
	str := func() *Schema { return &Schema{Type: "string"} }
	zero := 0.0
	one := 1
	price := func() *Schema { return &Schema{Type: "number", Format: "double", Minimum: &zero} }

	return map[string]*Schema{
		"Error": {
			Type: "object",
			Properties: map[string]*Schema{
				"code":    {Type: "integer"},
				"status":  str(),
				"error":   {Type: "string", Description: "Machine-readable error code"},
				"message": str(),
			},
			Required: []string{"code", "status", "message"},
		},
		"Message": {
			Type:       "object",
			Properties: map[string]*Schema{"message": str()},
			Required:   []string{"message"},
		},
		"Health": {
			Type:       "object",
			Properties: map[string]*Schema{"status": str()},
		},
		"UserCredentials": {
			Type: "object",
			Properties: map[string]*Schema{
				"username": {Type: "string", MinLength: &one},
				"password": {Type: "string", WriteOnly: true, MinLength: intPtr(8)},
			},
			Required: []string{"username", "password"},
		},
		"User": {
			Type: "object",
			Properties: map[string]*Schema{
				"id":       id(),
				"username": str(),
			},
		},
		"Tokens": {
			Type: "object",
			Properties: map[string]*Schema{
				"access_token":  str(),
				"refresh_token": str(),
			},
		},
		"AccessToken": {
			Type:       "object",
			Properties: map[string]*Schema{"access_token": str()},
		},
		"PackInput": {
			Type: "object",
			Properties: map[string]*Schema{
				"name":        {Type: "string", MinLength: &one},
				"description": str(),
			},
			Required: []string{"name"},
		},
		"Pack": {
			Type: "object",
			Properties: map[string]*Schema{
				"id":          id(),
				"name":        str(),
				"description": str(),
				"owner_id":    {Type: "integer", Format: "int64", Nullable: true, ReadOnly: true},
				"created_at":  timestamp(),
				"updated_at":  timestamp(),
				"items":       {Type: "array", Items: &Schema{Ref: ref("Item")}, ReadOnly: true},
			},
		},
		"PackSummary": {
			Type: "object",
			Properties: map[string]*Schema{
				"pack_id":       {Type: "integer", Format: "int64"},
				"item_count":    {Type: "integer"},
				"total_price":   {Type: "number", Format: "double"},
				"average_price": {Type: "number", Format: "double"},
				"min_price":     {Type: "number", Format: "double"},
				"max_price":     {Type: "number", Format: "double"},
			},
		},
		"ItemInput": {
			Type: "object",
			Properties: map[string]*Schema{
				"name":    {Type: "string", MinLength: &one},
				"price":   price(),
				"pack_id": {Type: "integer", Format: "int64"},
			},
			Required: []string{"name", "price", "pack_id"},
		},
		"ItemUpdate": {
			Type: "object",
			Properties: map[string]*Schema{
				"name":    {Type: "string", MinLength: &one},
				"price":   price(),
				"pack_id": {Type: "integer", Format: "int64", Description: "Required when the item does not exist yet"},
			},
			Required: []string{"name", "price"},
		},
		"Item": {
			Type: "object",
			Properties: map[string]*Schema{
				"id":         id(),
				"name":       str(),
				"price":      price(),
				"pack_id":    {Type: "integer", Format: "int64"},
				"created_at": timestamp(),
				"updated_at": timestamp(),
			},
		},
	}
}

var statusText = map[string]string{
	"400": "Invalid request",
	"401": "Missing, invalid, expired, revoked or non-fresh token",
	"403": "Not the owner of the resource",
	"404": "Resource not found",
	"409": "Resource already exists",
	"500": "Internal error",
}

func withErrors(responses map[string]Response, codes ...string) map[string]Response {
	for _, code := range append(codes, "500") {
		responses[code] = jsonResponse(statusText[code], "Error")
	}
	return responses
}

func ref(name string) string {
	return "#/components/schemas/" + name
}

func jsonBody(schema string) *RequestBody {
	return &RequestBody{
		Required: true,
		Content:  map[string]MediaType{"application/json": {Schema: &Schema{Ref: ref(schema)}}},
	}
}

func jsonResponse(description, schema string) Response {
	return Response{
		Description: description,
		Content:     map[string]MediaType{"application/json": {Schema: &Schema{Ref: ref(schema)}}},
	}
}

func jsonArrayResponse(description, schema string) Response {
	return Response{
		Description: description,
		Content: map[string]MediaType{"application/json": {
			Schema: &Schema{Type: "array", Items: &Schema{Ref: ref(schema)}},
		}},
	}
}

func pathID(name string) Parameter {
	return Parameter{Name: name, In: "path", Required: true, Schema: &Schema{Type: "integer", Format: "int64"}}
}

func intPtr(v int) *int {
	return &v
}
