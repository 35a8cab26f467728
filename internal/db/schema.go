package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    -- ==========================================================================
    -- PERSONA TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS persona SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON persona TYPE string;
    DEFINE FIELD IF NOT EXISTS slug ON persona TYPE string;
    DEFINE FIELD IF NOT EXISTS title ON persona TYPE string;
    DEFINE FIELD IF NOT EXISTS tradition ON persona TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS description ON persona TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS specialties ON persona TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS avatar_url ON persona TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS background_prompt ON persona TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS conversation_starters ON persona TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS voice_config ON persona TYPE option<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS is_active ON persona TYPE bool DEFAULT true;
    DEFINE FIELD IF NOT EXISTS sort_order ON persona TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS created_at ON persona TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS persona_slug ON persona FIELDS slug UNIQUE;

    -- ==========================================================================
    -- CONVERSATION TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS conversation SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS user_id ON conversation TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS persona ON conversation TYPE record<persona>;
    DEFINE FIELD IF NOT EXISTS title ON conversation TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS created_at ON conversation TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated_at ON conversation TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS conversation_user ON conversation FIELDS user_id;
    DEFINE INDEX IF NOT EXISTS conversation_updated ON conversation FIELDS updated_at;

    -- ==========================================================================
    -- MESSAGE TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS message SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS conversation ON message TYPE record<conversation>;
    DEFINE FIELD IF NOT EXISTS role ON message TYPE string ASSERT $value IN ["user", "assistant"];
    DEFINE FIELD IF NOT EXISTS content ON message TYPE string;
    DEFINE FIELD IF NOT EXISTS message_type ON message TYPE string DEFAULT "text" ASSERT $value IN ["text", "voice"];
    DEFINE FIELD IF NOT EXISTS audio_url ON message TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS audio_duration ON message TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS created_at ON message TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS message_conversation ON message FIELDS conversation, created_at;

    -- ==========================================================================
    -- INSIGHT TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS insight SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS user_id ON insight TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS conversation ON insight TYPE record<conversation>;
    DEFINE FIELD IF NOT EXISTS content ON insight TYPE string;
    DEFINE FIELD IF NOT EXISTS tags ON insight TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS created_at ON insight TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS insight_conversation ON insight FIELDS conversation;
`
