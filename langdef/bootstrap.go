package langdef

// bootstrapText describes the pgen dialect in itself. It is used by the
// round-trip tests and serves as a compact reference for the notation.
const bootstrapText = `
var token name;
var token string;
var token ref;
token eq = "=";
token arrow = "=>";
token semi = ";";
token open_brace = "{";
token close_brace = "}";
token open_paren = "(";
token close_paren = ")";
token comma = ",";
token opt = "?";
token kw_token = "token";
token kw_var = "var";
token kw_nt = "nt";
token kw_goal = "goal";
token kw_some = "Some";
token kw_none = "None";

goal nt grammar {
    token_decls nt_defs => grammar($0, $1);
}

nt token_decls {
    token_decl token_decls => concat($0, $1);
    => nil;
}

nt token_decl {
    "token" name "=" string ";" => literal_token($1, $3);
    "var" "token" name ";" => var_token($2);
}

nt nt_defs {
    nt_def nt_defs => concat($0, $1);
    nt_def => single($0);
}

nt nt_def {
    "nt" name "{" prods "}" => nt_def($1, $3);
    "goal" "nt" name "{" prods "}" => goal_nt_def($2, $4);
}

nt prods {
    prod prods => concat($0, $1);
    prod => single($0);
}

nt prod {
    terms action? ";" => prod($0, $1);
}

nt terms {
    term terms => concat($0, $1);
    => nil;
}

nt term {
    symbol "?" => optional($0);
    symbol => $0;
}

nt symbol {
    string => literal($0);
    name => reference($0);
}

nt action {
    "=>" expr => $1;
}

nt expr {
    ref => element($0);
    "None" => none();
    "Some" "(" expr ")" => some($2);
    name "(" exprs ")" => call($0, $2);
    name "(" ")" => call($0, nil);
    name => name_ref($0);
}

nt exprs {
    expr "," exprs => concat($0, $2);
    expr => single($0);
}
`

// Bootstrap returns the pgen-dialect description of the pgen dialect itself.
func Bootstrap() string {
	return bootstrapText
}
